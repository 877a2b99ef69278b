package models

import "time"

// ActivityType is the canonical activity classification shared by all sources.
type ActivityType string

const (
	ActivityRun      ActivityType = "run"
	ActivityCycle    ActivityType = "cycle"
	ActivityWalk     ActivityType = "walk"
	ActivitySwim     ActivityType = "swim"
	ActivityStrength ActivityType = "strength"
	ActivityUnknown  ActivityType = "unknown"
)

// NormalizedActivity is the canonical activity record produced by the
// normalizer from one raw provider payload. Records are immutable once
// created; a provider re-sending the same (source, original_id) supersedes
// the stored row rather than mutating it.
type NormalizedActivity struct {
	ID              string       `json:"id,omitempty"`
	UserID          string       `json:"user_id,omitempty"`
	Source          string       `json:"source"`
	OriginalID      string       `json:"original_id"`
	ActivityType    ActivityType `json:"activity_type"`
	DurationSeconds int          `json:"duration_seconds"`
	DistanceMeters  *float64     `json:"distance_meters,omitempty"`
	Calories        float64      `json:"calories"`
	StartTime       *time.Time   `json:"start_time,omitempty"`
	CreatedAt       time.Time    `json:"created_at,omitempty"`
}

// EndTime returns start + duration, or nil when the record has no
// temporal anchor.
func (a *NormalizedActivity) EndTime() *time.Time {
	if a.StartTime == nil {
		return nil
	}
	end := a.StartTime.Add(time.Duration(a.DurationSeconds) * time.Second)
	return &end
}

// GoalPeriod represents the evaluation window of a goal
type GoalPeriod string

const (
	PeriodDaily    GoalPeriod = "daily"
	PeriodWeekly   GoalPeriod = "weekly"
	PeriodLongTerm GoalPeriod = "long_term"
)

// Goal represents a user-defined target for one metric.
// At most one active goal per (user, metric) - enforced by the store.
type Goal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Metric      string     `json:"metric"`
	TargetValue float64    `json:"target_value"`
	Period      GoalPeriod `json:"period"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DailyMetric represents one day's aggregate value for a single metric
// (steps, calories_in, calories_out, sleep_hours, active_minutes, ...).
// These rows are the raw material for every MetricSeries the analysis
// engines consume.
type DailyMetric struct {
	UserID string    `json:"user_id"`
	Date   time.Time `json:"date"`
	Metric string    `json:"metric"`
	Value  float64   `json:"value"`
}

// MetricPoint is a dated observation used by the lag-correlation variants.
type MetricPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// IngestRequest represents a batch of raw provider payloads for one source
type IngestRequest struct {
	Records []map[string]any `json:"records" binding:"required"`
}

// IngestResponse reports what happened to an ingested batch
type IngestResponse struct {
	Received     int `json:"received"`
	Deduplicated int `json:"deduplicated"`
	Stored       int `json:"stored"`
}

// CreateGoalRequest represents the request to create a goal
type CreateGoalRequest struct {
	Metric      string     `json:"metric" binding:"required"`
	TargetValue float64    `json:"target_value" binding:"required,gt=0"`
	Period      GoalPeriod `json:"period" binding:"required,oneof=daily weekly long_term"`
}

// UpdateGoalRequest represents a partial goal update. Nullable wrappers
// distinguish "field absent" from "field: null" in the JSON body.
type UpdateGoalRequest struct {
	TargetValue NullableFloat64 `json:"target_value"`
	Period      NullableString  `json:"period"`
}
