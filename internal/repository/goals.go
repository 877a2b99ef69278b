package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

type goalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *sql.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, metric, target_value, period, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.UserID, goal.Metric, goal.TargetValue, string(goal.Period),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("creating goal for %q: %w", goal.Metric, ErrDuplicateGoal)
		}
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	return goal, nil
}

func (r *goalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, metric, target_value, period, created_at, updated_at
		FROM goals WHERE id = ?`, id)

	return scanGoal(row)
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, metric, target_value, period, created_at, updated_at
		FROM goals WHERE user_id = ?
		ORDER BY metric ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoalRow(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}

	return goals, rows.Err()
}

func (r *goalRepository) GetByUserIDAndMetric(ctx context.Context, userID, metric string) (*models.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, metric, target_value, period, created_at, updated_at
		FROM goals WHERE user_id = ? AND metric = ?`, userID, metric)

	return scanGoal(row)
}

func (r *goalRepository) Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error) {
	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE goals SET target_value = ?, period = ?, updated_at = ?
		WHERE id = ?`,
		goal.TargetValue, string(goal.Period), now.Format(time.RFC3339), id)
	if err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrGoalNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *goalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrGoalNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row *sql.Row) (*models.Goal, error) {
	g, err := scanGoalRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	return g, err
}

func scanGoalRow(row rowScanner) (*models.Goal, error) {
	var g models.Goal
	var period, createdAt, updatedAt string

	if err := row.Scan(&g.ID, &g.UserID, &g.Metric, &g.TargetValue, &period, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}

	g.Period = models.GoalPeriod(period)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		g.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		g.UpdatedAt = t
	}

	return &g, nil
}
