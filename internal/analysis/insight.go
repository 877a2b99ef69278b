package analysis

import (
	"fmt"
	"math"

	"github.com/pulseboard/backend/internal/models"
)

// nearMissPct is the progress threshold at which an unmet goal becomes a
// near-miss worth an urgency nudge.
const nearMissPct = 80.0

// MetricTrend pairs a metric name with its trend so callers control
// iteration order; ties within a rule resolve to the first matching entry.
type MetricTrend struct {
	Metric string
	Trend  models.TrendResult
}

// insightRule inspects the supplied statuses and either produces a message
// or passes.
type insightRule func(goals []models.GoalProgress, trends []MetricTrend) (string, bool)

// insightLadder is evaluated in order and the first match wins. The
// ordering is a product decision - urgency beats celebration beats
// encouragement - and must not be reordered.
var insightLadder = []insightRule{
	nearMissRule,
	downTrendRule,
	allGoalsMetRule,
	upTrendRule,
}

const genericInsight = "Consistency beats intensity. Keep logging your days and the trends will follow."

// GenerateInsight composes goal statuses and metric trends into a single
// prioritized natural-language insight.
func GenerateInsight(goals []models.GoalProgress, trends []MetricTrend) string {
	for _, rule := range insightLadder {
		if msg, ok := rule(goals, trends); ok {
			return msg
		}
	}
	return genericInsight
}

// nearMissRule nudges on the first unmet goal that is at least 80% done.
func nearMissRule(goals []models.GoalProgress, _ []MetricTrend) (string, bool) {
	for _, g := range goals {
		if !g.IsMet && g.ProgressPct >= nearMissPct {
			return fmt.Sprintf("So close! You're at %.0f%% of your %s goal - just %.0f to go.",
				g.ProgressPct, g.Metric, g.Remaining), true
		}
	}
	return "", false
}

// downTrendRule offers support on the first metric trending down.
func downTrendRule(_ []models.GoalProgress, trends []MetricTrend) (string, bool) {
	for _, mt := range trends {
		if mt.Trend.Trend == models.TrendDown {
			return fmt.Sprintf("Your %s has dipped %.1f%% lately. A small push today gets you back on track.",
				mt.Metric, math.Abs(mt.Trend.PercentChange)), true
		}
	}
	return "", false
}

// allGoalsMetRule celebrates when every supplied goal is met.
func allGoalsMetRule(goals []models.GoalProgress, _ []MetricTrend) (string, bool) {
	if len(goals) == 0 {
		return "", false
	}
	for _, g := range goals {
		if !g.IsMet {
			return "", false
		}
	}
	return "All goals met - fantastic work! Keep the streak alive.", true
}

// upTrendRule encourages on the first metric trending up.
func upTrendRule(_ []models.GoalProgress, trends []MetricTrend) (string, bool) {
	for _, mt := range trends {
		if mt.Trend.Trend == models.TrendUp {
			return fmt.Sprintf("Your %s is up %.1f%% - great momentum, keep it rolling!",
				mt.Metric, mt.Trend.PercentChange), true
		}
	}
	return "", false
}
