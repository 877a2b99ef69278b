package analysis

import (
	"math"

	"github.com/pulseboard/backend/internal/models"
)

// CheckProgress computes how far a metric snapshot is from its target.
//
// A non-positive target is trivially met with 100% progress and zero
// remaining: it means "no constraint", and treating it that way also keeps
// the progress division well-defined.
func CheckProgress(metric string, current, target float64, period models.GoalPeriod) models.GoalProgress {
	if target <= 0 {
		return models.GoalProgress{
			Metric:      metric,
			Current:     current,
			Target:      target,
			ProgressPct: 100.0,
			IsMet:       true,
			Remaining:   0,
		}
	}

	return models.GoalProgress{
		Metric:      metric,
		Current:     current,
		Target:      target,
		ProgressPct: round1(current / target * 100),
		IsMet:       current >= target,
		Remaining:   math.Max(0, target-current),
	}
}

// CalculateStreak counts consecutive days, walking back from the most
// recent entry of an oldest-first series, on which the value met the
// target. The walk stops at the first miss. The streak is active iff the
// most recent day met the target, i.e. the walk did not stop immediately.
func CalculateStreak(dailyValues []float64, target float64) models.StreakResult {
	streak := 0
	for i := len(dailyValues) - 1; i >= 0; i-- {
		if dailyValues[i] < target {
			break
		}
		streak++
	}

	return models.StreakResult{
		StreakDays: streak,
		IsActive:   streak > 0,
	}
}
