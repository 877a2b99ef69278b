package analysis

import (
	"testing"

	"github.com/pulseboard/backend/internal/models"
)

func TestCheckProgress(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		target        float64
		wantPct       float64
		wantMet       bool
		wantRemaining float64
	}{
		{
			name:          "partial progress",
			current:       7500,
			target:        10000,
			wantPct:       75.0,
			wantMet:       false,
			wantRemaining: 2500,
		},
		{
			name:          "exactly met",
			current:       10000,
			target:        10000,
			wantPct:       100.0,
			wantMet:       true,
			wantRemaining: 0,
		},
		{
			name:          "exceeded",
			current:       12500,
			target:        10000,
			wantPct:       125.0,
			wantMet:       true,
			wantRemaining: 0,
		},
		{
			name:          "zero current",
			current:       0,
			target:        10000,
			wantPct:       0.0,
			wantMet:       false,
			wantRemaining: 10000,
		},
		{
			name:          "rounds to one decimal",
			current:       1,
			target:        3,
			wantPct:       33.3,
			wantMet:       false,
			wantRemaining: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckProgress("steps", tt.current, tt.target, models.PeriodDaily)
			if got.ProgressPct != tt.wantPct {
				t.Errorf("ProgressPct = %v, want %v", got.ProgressPct, tt.wantPct)
			}
			if got.IsMet != tt.wantMet {
				t.Errorf("IsMet = %v, want %v", got.IsMet, tt.wantMet)
			}
			if got.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %v, want %v", got.Remaining, tt.wantRemaining)
			}
			if got.Metric != "steps" {
				t.Errorf("Metric = %q, want steps", got.Metric)
			}
		})
	}
}

func TestCheckProgress_NonPositiveTargetTriviallyMet(t *testing.T) {
	for _, target := range []float64{0, -100} {
		got := CheckProgress("steps", 100, target, models.PeriodDaily)

		if !got.IsMet {
			t.Errorf("target %v: IsMet = false, want true", target)
		}
		if got.ProgressPct != 100.0 {
			t.Errorf("target %v: ProgressPct = %v, want 100.0", target, got.ProgressPct)
		}
		if got.Remaining != 0 {
			t.Errorf("target %v: Remaining = %v, want 0", target, got.Remaining)
		}
	}
}

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		target     float64
		wantDays   int
		wantActive bool
	}{
		{
			name:       "streak broken mid-history",
			values:     []float64{10500, 11000, 9800, 10200, 10100},
			target:     10000,
			wantDays:   2,
			wantActive: true,
		},
		{
			name:       "all days meet target",
			values:     []float64{10500, 11000, 10200},
			target:     10000,
			wantDays:   3,
			wantActive: true,
		},
		{
			name:       "most recent day misses",
			values:     []float64{10500, 11000, 9000},
			target:     10000,
			wantDays:   0,
			wantActive: false,
		},
		{
			name:       "empty input",
			values:     nil,
			target:     10000,
			wantDays:   0,
			wantActive: false,
		},
		{
			name:       "exactly at target counts",
			values:     []float64{9000, 10000},
			target:     10000,
			wantDays:   1,
			wantActive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreak(tt.values, tt.target)
			if got.StreakDays != tt.wantDays {
				t.Errorf("StreakDays = %d, want %d", got.StreakDays, tt.wantDays)
			}
			if got.IsActive != tt.wantActive {
				t.Errorf("IsActive = %v, want %v", got.IsActive, tt.wantActive)
			}
		})
	}
}
