package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/repository"
)

// mockActivityRepository is an in-memory ActivityRepository for testing
type mockActivityRepository struct {
	activities  map[string]models.NormalizedActivity // user|source|original_id -> activity
	upsertCalls int
	failUpsert  error
}

func newMockActivityRepository() *mockActivityRepository {
	return &mockActivityRepository{activities: make(map[string]models.NormalizedActivity)}
}

func activityKey(userID string, a models.NormalizedActivity) string {
	return userID + "|" + a.Source + "|" + a.OriginalID
}

func (m *mockActivityRepository) UpsertBatch(ctx context.Context, userID string, activities []models.NormalizedActivity) (int, error) {
	m.upsertCalls++
	if m.failUpsert != nil {
		return 0, m.failUpsert
	}
	for i, a := range activities {
		a.UserID = userID
		if a.ID == "" {
			a.ID = fmt.Sprintf("mock-%d-%d", m.upsertCalls, i)
		}
		m.activities[activityKey(userID, a)] = a
	}
	return len(activities), nil
}

func (m *mockActivityRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.NormalizedActivity, error) {
	all := m.userActivities(userID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockActivityRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.NormalizedActivity, error) {
	var result []models.NormalizedActivity
	for _, a := range m.userActivities(userID) {
		if a.StartTime == nil {
			continue
		}
		if !a.StartTime.Before(startDate) && a.StartTime.Before(endDate) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockActivityRepository) CountByDateRange(ctx context.Context, userID string, startDate, endDate time.Time) (int, error) {
	in, err := m.GetByUserIDAndDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return 0, err
	}
	return len(in), nil
}

func (m *mockActivityRepository) userActivities(userID string) []models.NormalizedActivity {
	var result []models.NormalizedActivity
	for _, a := range m.activities {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].StartTime, result[j].StartTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return result
}

// mockGoalRepository is an in-memory GoalRepository for testing
type mockGoalRepository struct {
	goals map[string]*models.Goal
}

func newMockGoalRepository() *mockGoalRepository {
	return &mockGoalRepository{goals: make(map[string]*models.Goal)}
}

func (m *mockGoalRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	for _, g := range m.goals {
		if g.UserID == goal.UserID && g.Metric == goal.Metric {
			return nil, repository.ErrDuplicateGoal
		}
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	stored := *goal
	m.goals[goal.ID] = &stored
	return goal, nil
}

func (m *mockGoalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	if g, ok := m.goals[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, repository.ErrGoalNotFound
}

func (m *mockGoalRepository) GetByUserID(ctx context.Context, userID string) ([]models.Goal, error) {
	var result []models.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Metric < result[j].Metric })
	return result, nil
}

func (m *mockGoalRepository) GetByUserIDAndMetric(ctx context.Context, userID, metric string) (*models.Goal, error) {
	for _, g := range m.goals {
		if g.UserID == userID && g.Metric == metric {
			copied := *g
			return &copied, nil
		}
	}
	return nil, repository.ErrGoalNotFound
}

func (m *mockGoalRepository) Update(ctx context.Context, id string, goal *models.Goal) (*models.Goal, error) {
	existing, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	existing.TargetValue = goal.TargetValue
	existing.Period = goal.Period
	existing.UpdatedAt = time.Now().UTC()
	copied := *existing
	return &copied, nil
}

func (m *mockGoalRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.goals[id]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(m.goals, id)
	return nil
}

// mockDailyMetricRepository is an in-memory DailyMetricRepository for testing
type mockDailyMetricRepository struct {
	values map[string]float64 // user|date|metric -> value
}

func newMockDailyMetricRepository() *mockDailyMetricRepository {
	return &mockDailyMetricRepository{values: make(map[string]float64)}
}

func metricKey(userID string, date time.Time, metric string) string {
	return userID + "|" + date.UTC().Format("2006-01-02") + "|" + metric
}

func (m *mockDailyMetricRepository) set(userID string, date time.Time, metric string, value float64) {
	m.values[metricKey(userID, date, metric)] = value
}

func (m *mockDailyMetricRepository) BulkUpsert(ctx context.Context, metrics []models.DailyMetric) error {
	for _, dm := range metrics {
		m.set(dm.UserID, dm.Date, dm.Metric, dm.Value)
	}
	return nil
}

func (m *mockDailyMetricRepository) GetSeries(ctx context.Context, userID, metric string, startDate, endDate time.Time) ([]models.MetricPoint, error) {
	var points []models.MetricPoint
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if v, ok := m.values[metricKey(userID, d, metric)]; ok {
			points = append(points, models.MetricPoint{Date: d, Value: v})
		}
	}
	return points, nil
}

func (m *mockDailyMetricRepository) GetValue(ctx context.Context, userID, metric string, date time.Time) (float64, error) {
	return m.values[metricKey(userID, date, metric)], nil
}
