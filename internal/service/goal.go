package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/backend/internal/analysis"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/repository"
)

// defaultStreakDays bounds how far back a streak lookup walks when the
// caller does not say.
const defaultStreakDays = 30

type goalService struct {
	goalRepo   repository.GoalRepository
	metricRepo repository.DailyMetricRepository
	now        func() time.Time
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo repository.GoalRepository, metricRepo repository.DailyMetricRepository) GoalService {
	return &goalService{
		goalRepo:   goalRepo,
		metricRepo: metricRepo,
		now:        time.Now,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating goal id: %w", err)
	}

	goal := &models.Goal{
		ID:          id.String(),
		UserID:      userID,
		Metric:      req.Metric,
		TargetValue: req.TargetValue,
		Period:      req.Period,
	}

	return s.goalRepo.Create(ctx, goal)
}

func (s *goalService) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	// A goal belonging to someone else is indistinguishable from a
	// missing one.
	if goal.UserID != userID {
		return nil, repository.ErrGoalNotFound
	}

	return goal, nil
}

func (s *goalService) GetUserGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.goalRepo.GetByUserID(ctx, userID)
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.TargetValue.Set {
		if !req.TargetValue.Valid || req.TargetValue.Value <= 0 {
			return nil, fmt.Errorf("target_value must be a positive number")
		}
		goal.TargetValue = req.TargetValue.Value
	}
	if req.Period.Set {
		if !req.Period.Valid {
			return nil, fmt.Errorf("period cannot be null")
		}
		period := models.GoalPeriod(req.Period.Value)
		switch period {
		case models.PeriodDaily, models.PeriodWeekly, models.PeriodLongTerm:
			goal.Period = period
		default:
			return nil, fmt.Errorf("invalid period %q", req.Period.Value)
		}
	}

	return s.goalRepo.Update(ctx, goalID, goal)
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.GetGoal(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, goalID)
}

// GetProgress compares the goal's current value against its target. What
// "current" means depends on the period: today's value for daily goals,
// the trailing seven days for weekly, the whole recorded history for
// long-term.
func (s *goalService) GetProgress(ctx context.Context, userID, goalID string) (*models.GoalProgress, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	current, err := currentMetricValue(ctx, s.metricRepo, userID, goal.Metric, goal.Period, s.now())
	if err != nil {
		return nil, err
	}

	progress := analysis.CheckProgress(goal.Metric, current, goal.TargetValue, goal.Period)
	return &progress, nil
}

// GetStreak counts consecutive most-recent days that met the daily target.
// Days with no recorded value count as zero, so a gap breaks the streak.
func (s *goalService) GetStreak(ctx context.Context, userID, goalID string, days int) (*models.StreakResult, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if days <= 0 || days > 365 {
		days = defaultStreakDays
	}

	end := startOfDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))
	points, err := s.metricRepo.GetSeries(ctx, userID, goal.Metric, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading metric series: %w", err)
	}

	values := denseDailyValues(points, start, days)
	streak := analysis.CalculateStreak(values, goal.TargetValue)
	return &streak, nil
}

// currentMetricValue resolves the period-appropriate snapshot of a metric.
func currentMetricValue(ctx context.Context, repo repository.DailyMetricRepository, userID, metric string, period models.GoalPeriod, now time.Time) (float64, error) {
	today := startOfDay(now)

	switch period {
	case models.PeriodWeekly:
		return sumSeries(ctx, repo, userID, metric, today.AddDate(0, 0, -6), today)
	case models.PeriodLongTerm:
		// Far enough back to cover any realistic history.
		return sumSeries(ctx, repo, userID, metric, today.AddDate(-20, 0, 0), today)
	default:
		value, err := repo.GetValue(ctx, userID, metric, today)
		if err != nil {
			return 0, fmt.Errorf("loading daily value: %w", err)
		}
		return value, nil
	}
}

func sumSeries(ctx context.Context, repo repository.DailyMetricRepository, userID, metric string, start, end time.Time) (float64, error) {
	points, err := repo.GetSeries(ctx, userID, metric, start, end)
	if err != nil {
		return 0, fmt.Errorf("loading metric series: %w", err)
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total, nil
}

// denseDailyValues expands a sparse dated series into one value per day,
// oldest first, filling missing days with zero.
func denseDailyValues(points []models.MetricPoint, start time.Time, days int) []float64 {
	byDay := make(map[string]float64, len(points))
	for _, p := range points {
		byDay[p.Date.UTC().Format("2006-01-02")] = p.Value
	}

	values := make([]float64, days)
	for i := 0; i < days; i++ {
		values[i] = byDay[start.AddDate(0, 0, i).Format("2006-01-02")]
	}
	return values
}
