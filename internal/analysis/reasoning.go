package analysis

import (
	"math"

	"github.com/pulseboard/backend/internal/models"
)

const (
	// DefaultBMR is the basal metabolic rate assumed when the caller has
	// no better estimate for the user.
	DefaultBMR = 1800.0

	// minNarrativePoints is the overlap required before the narrative
	// sleep/activity correlation says anything definite.
	minNarrativePoints = 3

	// narrativeBand is the coefficient magnitude the narrative classifier
	// treats as a relationship. Deliberately looser than the structured
	// analyzer's bands: narrative output tolerates weaker evidence.
	narrativeBand = 0.5
)

// AnalyzeDeficit computes the day's caloric balance: intake minus basal
// plus active burn. Recommendation tiers are fixed thresholds on the net.
func AnalyzeDeficit(intake, activeBurn, bmr float64) models.DeficitResult {
	if bmr <= 0 {
		bmr = DefaultBMR
	}

	net := intake - (bmr + activeBurn)

	status := "surplus"
	if net < 0 {
		status = "deficit"
	}

	var recommendation string
	switch {
	case net < -500:
		recommendation = "Your deficit is quite large. Consider eating a bit more to keep energy and recovery up."
	case net < -200:
		recommendation = "You're in a healthy deficit. Nice, sustainable pace."
	case net <= 200:
		recommendation = "You're at maintenance. Adjust intake if your goal is to lose or gain."
	default:
		recommendation = "You're in a surplus. Trimming snacks or adding a walk would bring you toward balance."
	}

	return models.DeficitResult{
		Net:            net,
		Status:         status,
		Magnitude:      math.Abs(net),
		Recommendation: recommendation,
	}
}

// AnalyzeActivityTrend compares activity counts across two periods, e.g.
// this month against last month. A zero baseline reports 100% when the
// current period has any activity - same policy as the trend detector.
func AnalyzeActivityTrend(thisPeriod, lastPeriod int) models.ActivityTrendResult {
	var pctChange float64
	switch {
	case lastPeriod != 0:
		pctChange = float64(thisPeriod-lastPeriod) / float64(lastPeriod) * 100
	case thisPeriod > 0:
		pctChange = 100
	default:
		pctChange = 0
	}

	trend := "stable"
	if pctChange > 10 {
		trend = "improving"
	} else if pctChange < -10 {
		trend = "declining"
	}

	return models.ActivityTrendResult{
		Trend:         trend,
		ThisPeriod:    thisPeriod,
		LastPeriod:    lastPeriod,
		PercentChange: round1(pctChange),
	}
}

// CorrelateSleepAndActivity relates same-day sleep and activity and
// returns a narrative sentence rather than structured data. It needs at
// least three overlapping dated points and bands the coefficient at 0.5.
func CorrelateSleepAndActivity(sleep, activity []models.MetricPoint) string {
	byDate := make(map[string]float64, len(activity))
	for _, p := range activity {
		byDate[dayKey(p.Date)] = p.Value
	}

	var xs, ys []float64
	for _, p := range sleep {
		if v, ok := byDate[dayKey(p.Date)]; ok {
			xs = append(xs, p.Value)
			ys = append(ys, v)
		}
	}

	if len(xs) < minNarrativePoints {
		return "Not enough overlapping sleep and activity data to see a relationship yet."
	}

	r, ok := pearson(xs, ys)
	if !ok {
		return "No clear relationship between your sleep and activity yet."
	}

	switch {
	case r > narrativeBand:
		return "On days you sleep more, you tend to be more active. Protecting your sleep protects your training."
	case r < -narrativeBand:
		return "More sleep seems to coincide with less activity for you - possibly rest days doing their job."
	default:
		return "No clear relationship between your sleep and activity yet."
	}
}
