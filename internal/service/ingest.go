// Package service implements the business logic between the HTTP handlers
// and the stores. Services accept repository interfaces and return model
// structs; every call takes a context.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/normalize"
	"github.com/pulseboard/backend/internal/repository"
	"github.com/pulseboard/backend/internal/resolve"
)

type ingestService struct {
	activityRepo repository.ActivityRepository
	metricRepo   repository.DailyMetricRepository
}

// NewIngestService creates a new ingest service
func NewIngestService(activityRepo repository.ActivityRepository, metricRepo repository.DailyMetricRepository) IngestService {
	return &ingestService{
		activityRepo: activityRepo,
		metricRepo:   metricRepo,
	}
}

// Ingest runs one raw provider batch through the pipeline: normalize each
// record, resolve cross-source duplicates within the batch, persist the
// canonical records, then recompute the daily aggregates for every day the
// batch touched. Malformed records never fail the batch; they come out of
// the normalizer as unknown-typed records and flow through like any other.
func (s *ingestService) Ingest(ctx context.Context, userID, source string, records []map[string]any) (*models.IngestResponse, error) {
	normalized := make([]models.NormalizedActivity, 0, len(records))
	for _, raw := range records {
		normalized = append(normalized, normalize.Normalize(source, raw))
	}

	resolved := resolve.Resolve(normalized)

	stored, err := s.activityRepo.UpsertBatch(ctx, userID, resolved)
	if err != nil {
		return nil, fmt.Errorf("storing resolved activities: %w", err)
	}

	if err := s.rollUpDailyMetrics(ctx, userID, resolved); err != nil {
		// The canonical records are already stored; a roll-up failure
		// leaves the aggregates stale, not wrong. Log and move on.
		logger.Warn("daily metric roll-up failed",
			logger.String("user_id", userID),
			logger.String("source", source),
			logger.Err(err))
	}

	logger.Info("ingested activity batch",
		logger.String("user_id", userID),
		logger.String("source", source),
		logger.Int("received", len(records)),
		logger.Int("stored", stored))

	return &models.IngestResponse{
		Received:     len(records),
		Deduplicated: len(records) - len(resolved),
		Stored:       stored,
	}, nil
}

func (s *ingestService) GetTimeline(ctx context.Context, userID string, limit, offset int) ([]models.NormalizedActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.activityRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *ingestService) GetTimelineRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.NormalizedActivity, error) {
	return s.activityRepo.GetByUserIDAndDateRange(ctx, userID, startDate, endDate)
}

// rollUpDailyMetrics recomputes the per-day aggregates for every calendar
// day touched by the batch. Aggregates are recomputed from the stored
// canonical records rather than incremented, so re-ingesting a superseded
// record cannot double-count.
func (s *ingestService) rollUpDailyMetrics(ctx context.Context, userID string, activities []models.NormalizedActivity) error {
	days := map[time.Time]struct{}{}
	for _, a := range activities {
		if a.StartTime == nil {
			continue
		}
		days[startOfDay(*a.StartTime)] = struct{}{}
	}
	if len(days) == 0 {
		return nil
	}

	ordered := make([]time.Time, 0, len(days))
	for day := range days {
		ordered = append(ordered, day)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	var metrics []models.DailyMetric
	for _, day := range ordered {
		stored, err := s.activityRepo.GetByUserIDAndDateRange(ctx, userID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("loading activities for %s: %w", day.Format("2006-01-02"), err)
		}

		var activeMinutes, caloriesOut, distanceMeters float64
		for _, a := range stored {
			activeMinutes += float64(a.DurationSeconds) / 60
			caloriesOut += a.Calories
			if a.DistanceMeters != nil {
				distanceMeters += *a.DistanceMeters
			}
		}

		metrics = append(metrics,
			models.DailyMetric{UserID: userID, Date: day, Metric: "active_minutes", Value: activeMinutes},
			models.DailyMetric{UserID: userID, Date: day, Metric: "calories_out", Value: caloriesOut},
			models.DailyMetric{UserID: userID, Date: day, Metric: "distance_meters", Value: distanceMeters},
			models.DailyMetric{UserID: userID, Date: day, Metric: "workouts", Value: float64(len(stored))},
		)
	}

	return s.metricRepo.BulkUpsert(ctx, metrics)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
