package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/backend/internal/models"
)

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// UpsertBatch stores resolved canonical records. Re-ingested
// (source, original_id) pairs supersede the stored row. Returns the number
// of rows written.
func (r *activityRepository) UpsertBatch(ctx context.Context, userID string, activities []models.NormalizedActivity) (int, error) {
	if len(activities) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activities (id, user_id, source, original_id, activity_type,
			duration_seconds, distance_meters, calories, start_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, source, original_id) DO UPDATE SET
			activity_type = excluded.activity_type,
			duration_seconds = excluded.duration_seconds,
			distance_meters = excluded.distance_meters,
			calories = excluded.calories,
			start_time = excluded.start_time`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	stored := 0
	for _, a := range activities {
		id := a.ID
		if id == "" {
			v7, err := uuid.NewV7()
			if err != nil {
				return stored, fmt.Errorf("generating activity id: %w", err)
			}
			id = v7.String()
		}

		var startTime *string
		if a.StartTime != nil {
			s := a.StartTime.UTC().Format(time.RFC3339)
			startTime = &s
		}

		if _, err := stmt.ExecContext(ctx, id, userID, a.Source, a.OriginalID,
			string(a.ActivityType), a.DurationSeconds, a.DistanceMeters, a.Calories, startTime); err != nil {
			return stored, fmt.Errorf("upserting activity %s/%s: %w", a.Source, a.OriginalID, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}

	return stored, nil
}

func (r *activityRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.NormalizedActivity, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, source, original_id, activity_type,
			duration_seconds, distance_meters, calories, start_time
		FROM activities
		WHERE user_id = ?
		ORDER BY start_time IS NULL, start_time ASC
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (r *activityRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.NormalizedActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, source, original_id, activity_type,
			duration_seconds, distance_meters, calories, start_time
		FROM activities
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time ASC`,
		userID, startDate.UTC().Format(time.RFC3339), endDate.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying activities by range: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (r *activityRepository) CountByDateRange(ctx context.Context, userID string, startDate, endDate time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM activities
		WHERE user_id = ? AND start_time >= ? AND start_time < ?`,
		userID, startDate.UTC().Format(time.RFC3339), endDate.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return count, nil
}

func scanActivities(rows *sql.Rows) ([]models.NormalizedActivity, error) {
	var activities []models.NormalizedActivity
	for rows.Next() {
		var a models.NormalizedActivity
		var activityType string
		var startTime *string

		if err := rows.Scan(&a.ID, &a.UserID, &a.Source, &a.OriginalID, &activityType,
			&a.DurationSeconds, &a.DistanceMeters, &a.Calories, &startTime); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}

		a.ActivityType = models.ActivityType(activityType)
		if startTime != nil {
			if t, err := time.Parse(time.RFC3339, *startTime); err == nil {
				a.StartTime = &t
			}
		}

		activities = append(activities, a)
	}

	return activities, rows.Err()
}
