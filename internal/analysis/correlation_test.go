package analysis

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

func TestCorrelate_InsufficientData(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
	}{
		{"empty", nil, nil},
		{"four points", []float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Correlate(tt.x, tt.y)
			if got.Score != 0.0 {
				t.Errorf("Score = %v, want 0.0", got.Score)
			}
			if !strings.Contains(got.Message, "Not enough data") {
				t.Errorf("Message = %q, want a not-enough-data explanation", got.Message)
			}
		})
	}
}

func TestCorrelate_LengthMismatch(t *testing.T) {
	got := Correlate([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3})

	if got.Score != 0.0 {
		t.Errorf("Score = %v, want 0.0", got.Score)
	}
	if !strings.Contains(got.Message, "same length") {
		t.Errorf("Message = %q, want a length mismatch explanation", got.Message)
	}
}

func TestCorrelate_ZeroVariance(t *testing.T) {
	got := Correlate([]float64{5, 5, 5, 5, 5}, []float64{1, 2, 3, 4, 5})

	if got.Score != 0.0 {
		t.Errorf("Score = %v, want 0.0 (never NaN)", got.Score)
	}
	if math.IsNaN(got.Score) {
		t.Error("Score is NaN, must never propagate")
	}
	if !strings.Contains(got.Message, "undefined") {
		t.Errorf("Message = %q, want the undefined-computation message", got.Message)
	}
}

func TestCorrelate_StrengthBands(t *testing.T) {
	tests := []struct {
		name      string
		x, y      []float64
		wantScore float64
		wantMsg   string
	}{
		{
			name:      "perfect positive is strong",
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{2, 4, 6, 8, 10},
			wantScore: 1.0,
			wantMsg:   "Strong positive correlation",
		},
		{
			name:      "perfect negative is strong",
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{10, 8, 6, 4, 2},
			wantScore: -1.0,
			wantMsg:   "Strong negative correlation",
		},
		{
			name:      "exactly 0.7 falls in the moderate band",
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{1, 4, 2, 3, 5},
			wantScore: 0.7,
			wantMsg:   "Moderate positive correlation",
		},
		{
			name:      "weak correlation omits direction",
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{3, 1, 5, 2, 4},
			wantScore: 0.3,
			wantMsg:   "No meaningful correlation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Correlate(tt.x, tt.y)
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
			if got.DataPoints != len(tt.x) {
				t.Errorf("DataPoints = %d, want %d", got.DataPoints, len(tt.x))
			}
		})
	}
}

func datedSeries(start time.Time, values ...float64) []models.MetricPoint {
	points := make([]models.MetricPoint, len(values))
	for i, v := range values {
		points[i] = models.MetricPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return points
}

func TestCorrelateWithLag_AlignsShiftedDates(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Sleep on day d pairs with activity on day d+1. Activity is sleep
	// doubled with a one-day shift, so the lagged correlation is perfect.
	sleep := datedSeries(start, 6, 7, 8, 7.5, 6.5, 8.5)
	activity := datedSeries(start.AddDate(0, 0, 1), 12, 14, 16, 15, 13, 17)

	got := CorrelateWithLag(sleep, activity, 1)

	if got.Lag != 1 {
		t.Errorf("Lag = %d, want 1", got.Lag)
	}
	if got.DataPoints != 6 {
		t.Errorf("DataPoints = %d, want 6", got.DataPoints)
	}
	if math.Abs(got.Score-1.0) > 1e-9 {
		t.Errorf("Score = %v, want 1.0", got.Score)
	}
}

func TestCorrelateWithLag_OnlyCommonDatesPaired(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	sleep := datedSeries(start, 6, 7, 8, 7.5, 6.5, 8.5, 7)
	// Activity covers only three of the shifted dates.
	activity := datedSeries(start.AddDate(0, 0, 2), 10, 11, 12)

	got := CorrelateWithLag(sleep, activity, 2)

	if got.DataPoints != 3 {
		t.Errorf("DataPoints = %d, want 3 (only overlapping dates)", got.DataPoints)
	}
	if got.Score != 0.0 {
		t.Errorf("Score = %v, want 0.0 for insufficient pairs", got.Score)
	}
	if !strings.Contains(got.Message, "Not enough data") {
		t.Errorf("Message = %q, want a not-enough-data explanation", got.Message)
	}
}

func TestCorrelateWithLag_ZeroLagIsSameDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	x := datedSeries(start, 1, 2, 3, 4, 5)
	y := datedSeries(start, 2, 4, 6, 8, 10)

	got := CorrelateWithLag(x, y, 0)

	if got.Lag != 0 {
		t.Errorf("Lag = %d, want 0", got.Lag)
	}
	if math.Abs(got.Score-1.0) > 1e-9 {
		t.Errorf("Score = %v, want 1.0", got.Score)
	}
}
