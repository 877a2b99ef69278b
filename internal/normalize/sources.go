package normalize

import (
	"strings"

	"github.com/pulseboard/backend/internal/models"
)

// Per-source activity vocabulary tables. Unlisted codes map to
// ActivityUnknown via typeFor / typeForCode.

var appleHealthTypes = map[string]models.ActivityType{
	"HKWorkoutActivityTypeRunning":                     models.ActivityRun,
	"HKWorkoutActivityTypeCycling":                     models.ActivityCycle,
	"HKWorkoutActivityTypeWalking":                     models.ActivityWalk,
	"HKWorkoutActivityTypeSwimming":                    models.ActivitySwim,
	"HKWorkoutActivityTypeTraditionalStrengthTraining": models.ActivityStrength,
	"HKWorkoutActivityTypeFunctionalStrengthTraining":  models.ActivityStrength,
}

// Health Connect exercise session type codes.
var healthConnectTypes = map[int]models.ActivityType{
	56: models.ActivityRun,
	8:  models.ActivityCycle,
	79: models.ActivityWalk,
	73: models.ActivitySwim,
	74: models.ActivitySwim,
	70: models.ActivityStrength,
}

var stravaTypes = map[string]models.ActivityType{
	"Run":            models.ActivityRun,
	"Ride":           models.ActivityCycle,
	"VirtualRide":    models.ActivityCycle,
	"Walk":           models.ActivityWalk,
	"Hike":           models.ActivityWalk,
	"Swim":           models.ActivitySwim,
	"WeightTraining": models.ActivityStrength,
	"Workout":        models.ActivityStrength,
}

var fitbitTypes = map[string]models.ActivityType{
	"run":       models.ActivityRun,
	"treadmill": models.ActivityRun,
	"bike":      models.ActivityCycle,
	"walk":      models.ActivityWalk,
	"swim":      models.ActivitySwim,
	"weights":   models.ActivityStrength,
	"workout":   models.ActivityStrength,
}

var ouraTypes = map[string]models.ActivityType{
	"running":           models.ActivityRun,
	"cycling":           models.ActivityCycle,
	"walking":           models.ActivityWalk,
	"swimming":          models.ActivitySwim,
	"strength_training": models.ActivityStrength,
}

// Withings workout category codes.
var withingsTypes = map[int]models.ActivityType{
	1:  models.ActivityWalk,
	2:  models.ActivityRun,
	6:  models.ActivityCycle,
	7:  models.ActivitySwim,
	16: models.ActivityStrength,
}

var manualTypes = map[string]models.ActivityType{
	"run":      models.ActivityRun,
	"cycle":    models.ActivityCycle,
	"walk":     models.ActivityWalk,
	"swim":     models.ActivitySwim,
	"strength": models.ActivityStrength,
}

func typeFor(vocab map[string]models.ActivityType, key string) models.ActivityType {
	if t, ok := vocab[key]; ok {
		return t
	}
	return models.ActivityUnknown
}

func typeForCode(vocab map[int]models.ActivityType, code int) models.ActivityType {
	if t, ok := vocab[code]; ok {
		return t
	}
	return models.ActivityUnknown
}

// mapAppleHealth converts a HealthKit workout sample. Durations arrive in
// seconds, distances in meters, energy in kcal.
func mapAppleHealth(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID:   rawString(raw, "uuid"),
		ActivityType: typeFor(appleHealthTypes, rawString(raw, "workoutActivityType")),
		StartTime:    rawTime(raw, "startDate"),
	}

	if d, ok := rawFloat(raw, "duration"); ok && d > 0 {
		activity.DurationSeconds = int(d)
	}
	if dist, ok := rawFloat(raw, "totalDistance"); ok {
		activity.DistanceMeters = &dist
	}
	if cal, ok := rawFloat(raw, "totalEnergyBurned"); ok {
		activity.Calories = cal
	}

	return activity
}

// mapHealthConnect converts a Health Connect exercise session record.
func mapHealthConnect(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID: rawString(raw, "id"),
		StartTime:  rawTime(raw, "start_time"),
	}

	if code, ok := rawInt(raw, "exercise_type"); ok {
		activity.ActivityType = typeForCode(healthConnectTypes, code)
	} else {
		activity.ActivityType = models.ActivityUnknown
	}

	if d, ok := rawFloat(raw, "duration_seconds"); ok && d > 0 {
		activity.DurationSeconds = int(d)
	}
	if dist, ok := rawFloat(raw, "distance_meters"); ok {
		activity.DistanceMeters = &dist
	}
	if cal, ok := rawFloat(raw, "energy_kcal"); ok {
		activity.Calories = cal
	}

	return activity
}

// mapStrava converts a Strava activity summary. moving_time is seconds,
// distance is meters.
func mapStrava(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID:   rawString(raw, "id"),
		ActivityType: typeFor(stravaTypes, rawString(raw, "type")),
		StartTime:    rawTime(raw, "start_date"),
	}

	if d, ok := rawFloat(raw, "moving_time"); ok && d > 0 {
		activity.DurationSeconds = int(d)
	}
	if dist, ok := rawFloat(raw, "distance"); ok {
		activity.DistanceMeters = &dist
	}
	if cal, ok := rawFloat(raw, "calories"); ok {
		activity.Calories = cal
	}

	return activity
}

// mapFitbit converts a Fitbit activity log entry. Fitbit reports duration
// in milliseconds and distance in kilometers; both are converted here.
func mapFitbit(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID:   rawString(raw, "logId"),
		ActivityType: typeFor(fitbitTypes, strings.ToLower(rawString(raw, "activityName"))),
		StartTime:    rawTime(raw, "startTime"),
	}

	if ms, ok := rawFloat(raw, "duration_ms"); ok && ms > 0 {
		activity.DurationSeconds = int(ms / 1000)
	}
	if km, ok := rawFloat(raw, "distance"); ok {
		meters := km * 1000
		activity.DistanceMeters = &meters
	}
	if cal, ok := rawFloat(raw, "calories"); ok {
		activity.Calories = cal
	}

	return activity
}

// mapOura converts an Oura workout. Duration is derived from the session
// start/end pair when both parse.
func mapOura(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID:   rawString(raw, "id"),
		ActivityType: typeFor(ouraTypes, rawString(raw, "activity")),
		StartTime:    rawTime(raw, "start_datetime"),
	}

	if end := rawTime(raw, "end_datetime"); end != nil && activity.StartTime != nil {
		if d := end.Sub(*activity.StartTime); d > 0 {
			activity.DurationSeconds = int(d.Seconds())
		}
	}
	if dist, ok := rawFloat(raw, "distance"); ok {
		activity.DistanceMeters = &dist
	}
	if cal, ok := rawFloat(raw, "calories"); ok {
		activity.Calories = cal
	}

	return activity
}

// mapWithings converts a Withings workout. Timestamps arrive as Unix
// epoch seconds; duration is the start/end delta.
func mapWithings(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID: rawString(raw, "id"),
		StartTime:  rawEpoch(raw, "startdate"),
	}

	if code, ok := rawInt(raw, "category"); ok {
		activity.ActivityType = typeForCode(withingsTypes, code)
	} else {
		activity.ActivityType = models.ActivityUnknown
	}

	if end := rawEpoch(raw, "enddate"); end != nil && activity.StartTime != nil {
		if d := end.Sub(*activity.StartTime); d > 0 {
			activity.DurationSeconds = int(d.Seconds())
		}
	}
	if dist, ok := rawFloat(raw, "distance"); ok {
		activity.DistanceMeters = &dist
	}
	if cal, ok := rawFloat(raw, "calories"); ok {
		activity.Calories = cal
	}

	return activity
}

// mapManual converts a manually entered activity, which already uses the
// canonical field names.
func mapManual(raw map[string]any) models.NormalizedActivity {
	activity := models.NormalizedActivity{
		OriginalID:   rawString(raw, "id"),
		ActivityType: typeFor(manualTypes, strings.ToLower(rawString(raw, "activity_type"))),
		StartTime:    rawTime(raw, "start_time"),
	}

	if d, ok := rawFloat(raw, "duration_seconds"); ok && d > 0 {
		activity.DurationSeconds = int(d)
	}
	if dist, ok := rawFloat(raw, "distance_meters"); ok {
		activity.DistanceMeters = &dist
	}
	if cal, ok := rawFloat(raw, "calories"); ok {
		activity.Calories = cal
	}

	return activity
}
