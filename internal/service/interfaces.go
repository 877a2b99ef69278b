package service

import (
	"context"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

// IngestService defines the interface for the ingestion pipeline
type IngestService interface {
	Ingest(ctx context.Context, userID, source string, records []map[string]any) (*models.IngestResponse, error)
	GetTimeline(ctx context.Context, userID string, limit, offset int) ([]models.NormalizedActivity, error)
	GetTimelineRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.NormalizedActivity, error)
}

// GoalService defines the interface for goal business logic
type GoalService interface {
	CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error)
	GetUserGoals(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
	GetProgress(ctx context.Context, userID, goalID string) (*models.GoalProgress, error)
	GetStreak(ctx context.Context, userID, goalID string, days int) (*models.StreakResult, error)
}

// InsightService defines the interface for analytics and insight generation
type InsightService interface {
	GetTrend(ctx context.Context, userID, metric string, windowSize int) (*models.TrendResult, error)
	GetCorrelation(ctx context.Context, userID, metricA, metricB string, lagDays, days int) (*models.CorrelationResult, error)
	GetDeficit(ctx context.Context, userID string, date time.Time) (*models.DeficitResult, error)
	GetActivityTrend(ctx context.Context, userID string) (*models.ActivityTrendResult, error)
	GetSleepActivityNarrative(ctx context.Context, userID string, days int) (string, error)
	GetInsights(ctx context.Context, userID string) (*models.InsightResponse, error)
}
