// Package repository provides sqlite-backed data access for canonical
// activity records, goals, and daily metric aggregates.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrGoalNotFound is returned when a goal lookup matches no row
var ErrGoalNotFound = errors.New("goal not found")

// ErrDuplicateGoal is returned when creating a goal for a (user, metric)
// pair that already has an active goal
var ErrDuplicateGoal = errors.New("goal already exists for this metric")

// Open opens the sqlite database at the given path, creating the file and
// schema if necessary. Use ":memory:" for tests.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// migrate runs all schema migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Canonical activity records. (user_id, source, original_id) is
		// unique: a provider re-sending the same original_id supersedes
		// the stored row instead of duplicating it.
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			source TEXT NOT NULL,
			original_id TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			distance_meters REAL,
			calories REAL NOT NULL DEFAULT 0,
			start_time TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, source, original_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_user_start ON activities(user_id, start_time)`,

		// One active goal per (user, metric).
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			metric TEXT NOT NULL,
			target_value REAL NOT NULL,
			period TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, metric)
		)`,

		// Per-day aggregate values, one row per (user, date, metric).
		// These rows feed every MetricSeries the analysis engines see.
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			metric TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (user_id, date, metric)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_daily_metrics_user_metric ON daily_metrics(user_id, metric, date)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
