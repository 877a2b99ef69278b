package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/backend/internal/analysis"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/repository"
)

const (
	// defaultCorrelationDays is the lookback window for correlation queries.
	defaultCorrelationDays = 30
	// activityPeriodDays is the length of each period in the
	// period-over-period activity comparison.
	activityPeriodDays = 30
)

// insightMetrics is the fixed, ordered set of metrics the insight
// generator examines. The order doubles as the tie-break when several
// metrics trend the same way.
var insightMetrics = []string{"active_minutes", "workouts", "calories_out", "distance_meters"}

type insightService struct {
	activityRepo repository.ActivityRepository
	goalRepo     repository.GoalRepository
	metricRepo   repository.DailyMetricRepository
	now          func() time.Time
}

// NewInsightService creates a new insight service
func NewInsightService(activityRepo repository.ActivityRepository, goalRepo repository.GoalRepository, metricRepo repository.DailyMetricRepository) InsightService {
	return &insightService{
		activityRepo: activityRepo,
		goalRepo:     goalRepo,
		metricRepo:   metricRepo,
		now:          time.Now,
	}
}

// GetTrend compares the most recent window of daily values against the
// window before it. Days with no recorded value count as zero.
func (s *insightService) GetTrend(ctx context.Context, userID, metric string, windowSize int) (*models.TrendResult, error) {
	if windowSize <= 0 || windowSize > 90 {
		windowSize = analysis.DefaultTrendWindow
	}

	days := windowSize * 2
	end := startOfDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	points, err := s.metricRepo.GetSeries(ctx, userID, metric, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading metric series: %w", err)
	}

	// An empty series means nothing was ever recorded; report that as
	// insufficient data rather than a 100% drop from zero-filled days.
	if len(points) == 0 {
		return &models.TrendResult{Trend: models.TrendInsufficientData}, nil
	}

	values := denseDailyValues(points, start, days)
	trend := analysis.DetectTrend(values, windowSize, analysis.DefaultSensitivityPct)
	return &trend, nil
}

func (s *insightService) GetCorrelation(ctx context.Context, userID, metricA, metricB string, lagDays, days int) (*models.CorrelationResult, error) {
	if days <= 0 || days > 365 {
		days = defaultCorrelationDays
	}

	end := startOfDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	seriesA, err := s.metricRepo.GetSeries(ctx, userID, metricA, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading %s series: %w", metricA, err)
	}
	seriesB, err := s.metricRepo.GetSeries(ctx, userID, metricB, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading %s series: %w", metricB, err)
	}

	result := analysis.CorrelateWithLag(seriesA, seriesB, lagDays)
	return &result, nil
}

func (s *insightService) GetDeficit(ctx context.Context, userID string, date time.Time) (*models.DeficitResult, error) {
	day := startOfDay(date)

	intake, err := s.metricRepo.GetValue(ctx, userID, "calories_in", day)
	if err != nil {
		return nil, fmt.Errorf("loading calorie intake: %w", err)
	}
	burn, err := s.metricRepo.GetValue(ctx, userID, "calories_out", day)
	if err != nil {
		return nil, fmt.Errorf("loading calorie burn: %w", err)
	}

	result := analysis.AnalyzeDeficit(intake, burn, analysis.DefaultBMR)
	return &result, nil
}

func (s *insightService) GetActivityTrend(ctx context.Context, userID string) (*models.ActivityTrendResult, error) {
	end := startOfDay(s.now()).AddDate(0, 0, 1)
	periodStart := end.AddDate(0, 0, -activityPeriodDays)
	previousStart := periodStart.AddDate(0, 0, -activityPeriodDays)

	thisPeriod, err := s.activityRepo.CountByDateRange(ctx, userID, periodStart, end)
	if err != nil {
		return nil, fmt.Errorf("counting current period: %w", err)
	}
	lastPeriod, err := s.activityRepo.CountByDateRange(ctx, userID, previousStart, periodStart)
	if err != nil {
		return nil, fmt.Errorf("counting previous period: %w", err)
	}

	result := analysis.AnalyzeActivityTrend(thisPeriod, lastPeriod)
	return &result, nil
}

func (s *insightService) GetSleepActivityNarrative(ctx context.Context, userID string, days int) (string, error) {
	if days <= 0 || days > 365 {
		days = defaultCorrelationDays
	}

	end := startOfDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	sleep, err := s.metricRepo.GetSeries(ctx, userID, "sleep_hours", start, end)
	if err != nil {
		return "", fmt.Errorf("loading sleep series: %w", err)
	}
	activity, err := s.metricRepo.GetSeries(ctx, userID, "active_minutes", start, end)
	if err != nil {
		return "", fmt.Errorf("loading activity series: %w", err)
	}

	return analysis.CorrelateSleepAndActivity(sleep, activity), nil
}

// GetInsights assembles goal progress and per-metric trends, then runs the
// prioritized rule ladder to pick the one message worth surfacing.
func (s *insightService) GetInsights(ctx context.Context, userID string) (*models.InsightResponse, error) {
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	now := s.now()
	statuses := make([]models.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		current, err := currentMetricValue(ctx, s.metricRepo, userID, goal.Metric, goal.Period, now)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, analysis.CheckProgress(goal.Metric, current, goal.TargetValue, goal.Period))
	}

	var ordered []analysis.MetricTrend
	trendsByMetric := make(map[string]models.TrendResult, len(insightMetrics))
	for _, metric := range insightMetrics {
		trend, err := s.GetTrend(ctx, userID, metric, analysis.DefaultTrendWindow)
		if err != nil {
			return nil, err
		}
		if trend.Trend == models.TrendInsufficientData {
			continue
		}
		ordered = append(ordered, analysis.MetricTrend{Metric: metric, Trend: *trend})
		trendsByMetric[metric] = *trend
	}

	return &models.InsightResponse{
		Insight:      analysis.GenerateInsight(statuses, ordered),
		GoalStatuses: statuses,
		Trends:       trendsByMetric,
	}, nil
}
