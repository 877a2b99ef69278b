package normalize

import (
	"testing"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

func TestNormalize_AppleHealth(t *testing.T) {
	raw := map[string]any{
		"uuid":                "ABC-123",
		"workoutActivityType": "HKWorkoutActivityTypeRunning",
		"duration":            1800.0,
		"totalDistance":       5000.0,
		"totalEnergyBurned":   320.0,
		"startDate":           "2024-03-01T07:30:00Z",
	}

	got := Normalize("apple_health", raw)

	if got.Source != "apple_health" {
		t.Errorf("Source = %q, want apple_health", got.Source)
	}
	if got.OriginalID != "ABC-123" {
		t.Errorf("OriginalID = %q, want ABC-123", got.OriginalID)
	}
	if got.ActivityType != models.ActivityRun {
		t.Errorf("ActivityType = %q, want run", got.ActivityType)
	}
	if got.DurationSeconds != 1800 {
		t.Errorf("DurationSeconds = %d, want 1800", got.DurationSeconds)
	}
	if got.DistanceMeters == nil || *got.DistanceMeters != 5000 {
		t.Errorf("DistanceMeters = %v, want 5000", got.DistanceMeters)
	}
	if got.Calories != 320 {
		t.Errorf("Calories = %v, want 320", got.Calories)
	}
	want := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
	if got.StartTime == nil || !got.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, want)
	}
}

func TestNormalize_FitbitUnitConversion(t *testing.T) {
	raw := map[string]any{
		"logId":        float64(5567823),
		"activityName": "Run",
		"duration_ms":  1800000.0,
		"distance":     5.2,
		"calories":     410.0,
		"startTime":    "2024-03-02T18:00:00Z",
	}

	got := Normalize("fitbit", raw)

	if got.DurationSeconds != 1800 {
		t.Errorf("DurationSeconds = %d, want 1800 (ms converted)", got.DurationSeconds)
	}
	if got.DistanceMeters == nil || *got.DistanceMeters != 5200 {
		t.Errorf("DistanceMeters = %v, want 5200 (km converted)", got.DistanceMeters)
	}
	if got.OriginalID != "5567823" {
		t.Errorf("OriginalID = %q, want 5567823", got.OriginalID)
	}
	if got.ActivityType != models.ActivityRun {
		t.Errorf("ActivityType = %q, want run", got.ActivityType)
	}
}

func TestNormalize_DurationDerivedFromInterval(t *testing.T) {
	tests := []struct {
		name   string
		source string
		raw    map[string]any
		want   int
	}{
		{
			name:   "oura start/end datetimes",
			source: "oura",
			raw: map[string]any{
				"id":             "oura-1",
				"activity":       "cycling",
				"start_datetime": "2024-03-01T06:00:00Z",
				"end_datetime":   "2024-03-01T07:15:00Z",
			},
			want: 4500,
		},
		{
			name:   "withings epoch pair",
			source: "withings",
			raw: map[string]any{
				"id":        "w-9",
				"category":  float64(2),
				"startdate": float64(1709275800),
				"enddate":   float64(1709277600),
			},
			want: 1800,
		},
		{
			name:   "oura end before start yields zero",
			source: "oura",
			raw: map[string]any{
				"id":             "oura-2",
				"activity":       "running",
				"start_datetime": "2024-03-01T08:00:00Z",
				"end_datetime":   "2024-03-01T07:00:00Z",
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.source, tt.raw)
			if got.DurationSeconds != tt.want {
				t.Errorf("DurationSeconds = %d, want %d", got.DurationSeconds, tt.want)
			}
		})
	}
}

func TestNormalize_TypeVocabularies(t *testing.T) {
	tests := []struct {
		name   string
		source string
		raw    map[string]any
		want   models.ActivityType
	}{
		{"strava ride", "strava", map[string]any{"type": "Ride"}, models.ActivityCycle},
		{"strava weight training", "strava", map[string]any{"type": "WeightTraining"}, models.ActivityStrength},
		{"strava unknown vocabulary", "strava", map[string]any{"type": "Kitesurf"}, models.ActivityUnknown},
		{"health connect run code", "health_connect", map[string]any{"exercise_type": float64(56)}, models.ActivityRun},
		{"health connect unknown code", "health_connect", map[string]any{"exercise_type": float64(999)}, models.ActivityUnknown},
		{"health connect missing code", "health_connect", map[string]any{}, models.ActivityUnknown},
		{"fitbit case insensitive", "fitbit", map[string]any{"activityName": "WALK"}, models.ActivityWalk},
		{"withings swim code", "withings", map[string]any{"category": float64(7)}, models.ActivitySwim},
		{"manual strength", "manual", map[string]any{"activity_type": "Strength"}, models.ActivityStrength},
		{"apple health swim", "apple_health", map[string]any{"workoutActivityType": "HKWorkoutActivityTypeSwimming"}, models.ActivitySwim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.source, tt.raw)
			if got.ActivityType != tt.want {
				t.Errorf("ActivityType = %q, want %q", got.ActivityType, tt.want)
			}
		})
	}
}

func TestNormalize_UnknownSource(t *testing.T) {
	got := Normalize("garmin", map[string]any{"anything": "at all"})

	if got.Source != "garmin" {
		t.Errorf("Source = %q, want garmin", got.Source)
	}
	if got.ActivityType != models.ActivityUnknown {
		t.Errorf("ActivityType = %q, want unknown", got.ActivityType)
	}
	if got.DurationSeconds != 0 || got.Calories != 0 {
		t.Errorf("expected zero defaults, got duration=%d calories=%v", got.DurationSeconds, got.Calories)
	}
	if got.DistanceMeters != nil {
		t.Errorf("DistanceMeters = %v, want nil", got.DistanceMeters)
	}
	if got.StartTime != nil {
		t.Errorf("StartTime = %v, want nil", got.StartTime)
	}
}

func TestNormalize_MissingFieldsDefault(t *testing.T) {
	// A strava record with nothing but an ID still normalizes.
	got := Normalize("strava", map[string]any{"id": float64(42)})

	if got.OriginalID != "42" {
		t.Errorf("OriginalID = %q, want 42", got.OriginalID)
	}
	if got.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %d, want 0", got.DurationSeconds)
	}
	if got.Calories != 0 {
		t.Errorf("Calories = %v, want 0", got.Calories)
	}
	if got.DistanceMeters != nil {
		t.Errorf("DistanceMeters = %v, want nil for absent field", got.DistanceMeters)
	}
	if got.StartTime != nil {
		t.Errorf("StartTime = %v, want nil", got.StartTime)
	}
}

func TestNormalize_MalformedTimestampIgnored(t *testing.T) {
	got := Normalize("strava", map[string]any{
		"id":         "77",
		"start_date": "yesterday at noon",
	})

	if got.StartTime != nil {
		t.Errorf("StartTime = %v, want nil for unparseable timestamp", got.StartTime)
	}
}

func TestKnownSource(t *testing.T) {
	for _, source := range []string{"apple_health", "health_connect", "strava", "fitbit", "oura", "withings", "manual"} {
		if !KnownSource(source) {
			t.Errorf("KnownSource(%q) = false, want true", source)
		}
	}
	if KnownSource("garmin") {
		t.Error("KnownSource(garmin) = true, want false")
	}
}
