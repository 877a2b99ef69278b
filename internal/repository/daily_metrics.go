package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

const dayFormat = "2006-01-02"

type dailyMetricRepository struct {
	db *sql.DB
}

// NewDailyMetricRepository creates a new daily metric repository
func NewDailyMetricRepository(db *sql.DB) DailyMetricRepository {
	return &dailyMetricRepository{db: db}
}

// BulkUpsert writes a batch of daily aggregate values, replacing any
// existing value for the same (user, date, metric).
func (r *dailyMetricRepository) BulkUpsert(ctx context.Context, metrics []models.DailyMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_metrics (user_id, date, metric, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date, metric) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range metrics {
		if _, err := stmt.ExecContext(ctx, m.UserID, m.Date.UTC().Format(dayFormat), m.Metric, m.Value); err != nil {
			return fmt.Errorf("upserting daily metric %s/%s: %w", m.Metric, m.Date.Format(dayFormat), err)
		}
	}

	return tx.Commit()
}

// GetSeries returns the stored daily values for one metric over a date
// range, oldest first. Days with no row are absent; callers that need a
// dense series zero-fill.
func (r *dailyMetricRepository) GetSeries(ctx context.Context, userID, metric string, startDate, endDate time.Time) ([]models.MetricPoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, value FROM daily_metrics
		WHERE user_id = ? AND metric = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID, metric, startDate.UTC().Format(dayFormat), endDate.UTC().Format(dayFormat))
	if err != nil {
		return nil, fmt.Errorf("querying metric series: %w", err)
	}
	defer rows.Close()

	var points []models.MetricPoint
	for rows.Next() {
		var dateStr string
		var p models.MetricPoint
		if err := rows.Scan(&dateStr, &p.Value); err != nil {
			return nil, fmt.Errorf("scanning metric point: %w", err)
		}
		if t, err := time.Parse(dayFormat, dateStr); err == nil {
			p.Date = t
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// GetValue returns the stored value for one metric on one day; missing
// rows read as zero.
func (r *dailyMetricRepository) GetValue(ctx context.Context, userID, metric string, date time.Time) (float64, error) {
	var value float64
	err := r.db.QueryRowContext(ctx, `
		SELECT value FROM daily_metrics
		WHERE user_id = ? AND metric = ? AND date = ?`,
		userID, metric, date.UTC().Format(dayFormat)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying daily metric: %w", err)
	}
	return value, nil
}
