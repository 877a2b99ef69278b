package repository

import (
	"context"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

// ActivityRepository defines the interface for canonical activity data access
type ActivityRepository interface {
	UpsertBatch(ctx context.Context, userID string, activities []models.NormalizedActivity) (int, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.NormalizedActivity, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.NormalizedActivity, error)
	CountByDateRange(ctx context.Context, userID string, startDate, endDate time.Time) (int, error)
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetByID(ctx context.Context, id string) (*models.Goal, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Goal, error)
	GetByUserIDAndMetric(ctx context.Context, userID, metric string) (*models.Goal, error)
	Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error)
	Delete(ctx context.Context, id string) error
}

// DailyMetricRepository defines the interface for daily aggregate data access
type DailyMetricRepository interface {
	BulkUpsert(ctx context.Context, metrics []models.DailyMetric) error
	GetSeries(ctx context.Context, userID, metric string, startDate, endDate time.Time) ([]models.MetricPoint, error)
	GetValue(ctx context.Context, userID, metric string, date time.Time) (float64, error)
}
