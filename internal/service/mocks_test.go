package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/havenlabs/haven/backend/internal/models"
)

// mockCheckInRepository is an in-memory CheckInRepository for testing.
type mockCheckInRepository struct {
	mu          sync.Mutex
	checkins    map[string]*models.CheckIn // userID|date -> check-in
	createCalls int
	failFor     map[string]bool // userID -> force range reads to fail
}

func newMockCheckInRepository() *mockCheckInRepository {
	return &mockCheckInRepository{
		checkins: make(map[string]*models.CheckIn),
		failFor:  make(map[string]bool),
	}
}

func checkInKey(userID, date string) string { return userID + "|" + date }

func (m *mockCheckInRepository) Create(ctx context.Context, checkin *models.CheckIn) (*models.CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if checkin.ID == "" {
		checkin.ID = uuid.NewString()
	}
	checkin.CreatedAt = time.Now()
	m.checkins[checkInKey(checkin.UserID, checkin.Date)] = checkin
	return checkin, nil
}

func (m *mockCheckInRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*models.CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.checkins[checkInKey(userID, date)]; ok {
		return c, nil
	}
	return nil, nil
}

func (m *mockCheckInRepository) GetByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[userID] {
		return nil, errors.New("storage unavailable")
	}
	var result []models.CheckIn
	for _, c := range m.checkins {
		if c.UserID == userID && c.Date >= startDate && c.Date <= endDate {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockCheckInRepository) GetRecent(ctx context.Context, userID string, days int) ([]models.CheckIn, error) {
	end := time.Now().Format(models.DateLayout)
	start := time.Now().AddDate(0, 0, -days).Format(models.DateLayout)
	return m.GetByUserAndDateRange(ctx, userID, start, end)
}

func (m *mockCheckInRepository) SetCrisisFlags(ctx context.Context, id string, detected, handled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.checkins {
		if c.ID == id {
			c.CrisisDetected = detected
			c.CrisisHandled = handled
			return nil
		}
	}
	return errors.New("check-in not found")
}

func (m *mockCheckInRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	for _, c := range m.checkins {
		seen[c.UserID] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// mockPlanRepository is an in-memory PlanRepository for testing.
type mockPlanRepository struct {
	mu          sync.Mutex
	plans       map[string]*models.DailyPlan // id -> plan
	createCalls int
}

func newMockPlanRepository() *mockPlanRepository {
	return &mockPlanRepository{plans: make(map[string]*models.DailyPlan)}
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *models.DailyPlan) (*models.DailyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	// Upsert on user and date, matching the real store.
	for id, p := range m.plans {
		if p.UserID == plan.UserID && p.Date == plan.Date {
			delete(m.plans, id)
		}
	}
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	m.plans[plan.ID] = plan
	return plan, nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id string) (*models.DailyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*models.DailyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.plans {
		if p.UserID == userID && p.Date == date {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.DailyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.DailyPlan
	for _, p := range m.plans {
		if p.UserID == userID && p.Date >= startDate && p.Date <= endDate {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockPlanRepository) UpdateActions(ctx context.Context, id string, actions []models.PlannedAction) (*models.DailyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, errors.New("plan not found")
	}
	p.Actions = actions
	p.UpdatedAt = time.Now()
	return p, nil
}

// mockTriggerDateRepository is an in-memory TriggerDateRepository for testing.
type mockTriggerDateRepository struct {
	mu    sync.Mutex
	dates map[string]*models.TriggerDate // id -> trigger date
}

func newMockTriggerDateRepository() *mockTriggerDateRepository {
	return &mockTriggerDateRepository{dates: make(map[string]*models.TriggerDate)}
}

func (m *mockTriggerDateRepository) Create(ctx context.Context, td *models.TriggerDate) (*models.TriggerDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if td.ID == "" {
		td.ID = uuid.NewString()
	}
	m.dates[td.ID] = td
	return td, nil
}

func (m *mockTriggerDateRepository) GetByUserID(ctx context.Context, userID string) ([]models.TriggerDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.TriggerDate
	for _, td := range m.dates {
		if td.UserID == userID {
			result = append(result, *td)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockTriggerDateRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	td, ok := m.dates[id]
	if !ok || td.UserID != userID {
		return errors.New("trigger date not found")
	}
	delete(m.dates, id)
	return nil
}

// mockBadDayStateRepository is an in-memory BadDayStateRepository for testing.
type mockBadDayStateRepository struct {
	mu        sync.Mutex
	states    map[string]*models.BadDayState // userID -> state
	saveCalls int
}

func newMockBadDayStateRepository() *mockBadDayStateRepository {
	return &mockBadDayStateRepository{states: make(map[string]*models.BadDayState)}
}

func (m *mockBadDayStateRepository) Get(ctx context.Context, userID string) (*models.BadDayState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[userID]; ok {
		return s, nil
	}
	return &models.BadDayState{UserID: userID}, nil
}

func (m *mockBadDayStateRepository) Save(ctx context.Context, state *models.BadDayState) (*models.BadDayState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	m.states[state.UserID] = state
	return state, nil
}

// mockSummaryRepository is an in-memory SummaryRepository for testing.
type mockSummaryRepository struct {
	mu        sync.Mutex
	summaries map[string]*models.WeeklySummary // userID|weekStart -> summary
}

func newMockSummaryRepository() *mockSummaryRepository {
	return &mockSummaryRepository{summaries: make(map[string]*models.WeeklySummary)}
}

func (m *mockSummaryRepository) Create(ctx context.Context, summary *models.WeeklySummary) (*models.WeeklySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[checkInKey(summary.UserID, summary.WeekStart)] = summary
	return summary, nil
}

func (m *mockSummaryRepository) GetByUserAndWeekStart(ctx context.Context, userID, weekStart string) (*models.WeeklySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.summaries[checkInKey(userID, weekStart)]; ok {
		return s, nil
	}
	return nil, nil
}

func (m *mockSummaryRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.WeeklySummary
	for _, s := range m.summaries {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WeekStart > result[j].WeekStart })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
