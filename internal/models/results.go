package models

// TrendDirection classifies the movement of a metric between two
// adjacent windows.
type TrendDirection string

const (
	TrendUp               TrendDirection = "up"
	TrendDown             TrendDirection = "down"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// TrendResult is the output of the trend detector. When Trend is
// TrendInsufficientData the numeric fields are zero and carry no meaning.
type TrendResult struct {
	Trend         TrendDirection `json:"trend"`
	PercentChange float64        `json:"percent_change"`
	RecentAvg     float64        `json:"recent_avg"`
	PreviousAvg   float64        `json:"previous_avg"`
}

// CorrelationResult is the output of the correlation analyzer.
// Score is the Pearson coefficient in [-1, 1]; a score of 0 with an
// explanatory message stands in for insufficient or degenerate data,
// never an error.
type CorrelationResult struct {
	Score      float64 `json:"score"`
	Message    string  `json:"message"`
	Lag        int     `json:"lag"`
	DataPoints int     `json:"data_points"`
}

// GoalProgress reports how far a metric snapshot is from its target.
type GoalProgress struct {
	Metric      string  `json:"metric"`
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	ProgressPct float64 `json:"progress_pct"`
	IsMet       bool    `json:"is_met"`
	Remaining   float64 `json:"remaining"`
}

// StreakResult counts consecutive most-recent days that met a target.
type StreakResult struct {
	StreakDays int  `json:"streak_days"`
	IsActive   bool `json:"is_active"`
}

// DeficitResult is the reasoning engine's caloric deficit/surplus analysis.
type DeficitResult struct {
	Net            float64 `json:"net"`
	Status         string  `json:"status"`
	Magnitude      float64 `json:"magnitude"`
	Recommendation string  `json:"recommendation"`
}

// ActivityTrendResult compares activity counts across two periods.
type ActivityTrendResult struct {
	Trend         string  `json:"trend"`
	ThisPeriod    int     `json:"this_period"`
	LastPeriod    int     `json:"last_period"`
	PercentChange float64 `json:"percent_change"`
}

// InsightResponse carries the single prioritized insight alongside the
// structured inputs it was derived from, so the dashboard and the LLM
// prompt builder can render supporting data.
type InsightResponse struct {
	Insight      string                 `json:"insight"`
	GoalStatuses []GoalProgress         `json:"goal_statuses"`
	Trends       map[string]TrendResult `json:"trends"`
}
