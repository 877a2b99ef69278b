// Package analysis holds the derived-metric engines: trend detection,
// correlation, goal progress and streaks, the insight rule ladder, and the
// higher-order reasoning calculations.
//
// Every function here is pure: no I/O, no shared state, safe to call from
// any number of goroutines. Bad or insufficient input never produces an
// error - these results feed a dashboard and an LLM prompt, where a
// conservative fallback value is strictly better than a crash. Failure
// modes are sentinel result values instead.
package analysis

import (
	"math"

	"github.com/pulseboard/backend/internal/models"
)

const (
	// DefaultTrendWindow is the trailing window size, in observations,
	// compared against the adjacent previous window.
	DefaultTrendWindow = 7

	// DefaultSensitivityPct is the percent change a window comparison must
	// exceed before it counts as movement rather than noise.
	DefaultSensitivityPct = 10.0
)

// DetectTrend classifies directional movement of an ordered series
// (oldest first) by comparing the mean of the most recent windowSize
// values against the mean of the windowSize values before them.
//
// Fewer than 2*windowSize values yield TrendInsufficientData with no other
// fields populated. A zero previous average reports a 100% change when the
// recent window is non-zero: something from nothing is a large positive
// signal, not a division error.
func DetectTrend(values []float64, windowSize int, sensitivityPct float64) models.TrendResult {
	if windowSize <= 0 {
		windowSize = DefaultTrendWindow
	}
	if len(values) < 2*windowSize {
		return models.TrendResult{Trend: models.TrendInsufficientData}
	}

	recent := values[len(values)-windowSize:]
	previous := values[len(values)-2*windowSize : len(values)-windowSize]

	recentAvg := mean(recent)
	previousAvg := mean(previous)

	var pctChange float64
	switch {
	case previousAvg != 0:
		pctChange = (recentAvg - previousAvg) / previousAvg * 100
	case recentAvg > 0:
		pctChange = 100.0
	default:
		pctChange = 0.0
	}

	trend := models.TrendStable
	if pctChange > sensitivityPct {
		trend = models.TrendUp
	} else if pctChange < -sensitivityPct {
		trend = models.TrendDown
	}

	return models.TrendResult{
		Trend:         trend,
		PercentChange: round1(pctChange),
		RecentAvg:     round2(recentAvg),
		PreviousAvg:   round2(previousAvg),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// round1 rounds to one decimal place for human-presentable percentages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places for presentable averages.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
