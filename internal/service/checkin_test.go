package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/notify"
)

type fixture struct {
	checkIns     *mockCheckInRepository
	plans        *mockPlanRepository
	badDays      *mockBadDayStateRepository
	triggerDates *mockTriggerDateRepository
	service      CheckInService
	now          time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Now()
	checkIns := newMockCheckInRepository()
	plans := newMockPlanRepository()
	badDays := newMockBadDayStateRepository()
	triggerDates := newMockTriggerDateRepository()
	clock := func() time.Time { return now }
	planSvc := NewPlanService(plans, clock)
	svc := NewCheckInService(checkIns, plans, badDays, triggerDates, planSvc, notify.Noop{}, clock)
	return &fixture{
		checkIns:     checkIns,
		plans:        plans,
		badDays:      badDays,
		triggerDates: triggerDates,
		service:      svc,
		now:          now,
	}
}

func (f *fixture) date(offset int) string {
	return f.now.AddDate(0, 0, offset).Format(models.DateLayout)
}

func okRequest(date string) *models.CreateCheckInRequest {
	return &models.CreateCheckInRequest{
		Date: date, Mood: 6, Stress: 4, Sleep: 7, Energy: 6, Focus: 6, Anxiety: 3,
	}
}

func TestCreateCheckIn_HappyPath(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.CreateCheckIn(context.Background(), "user-1", okRequest(f.date(0)))
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if result.CheckIn == nil || result.CheckIn.ID == "" {
		t.Fatal("expected a stored check-in with an ID")
	}
	if result.Alert != nil {
		t.Errorf("expected no crisis alert, got severity %s", result.Alert.Severity)
	}
	if result.CheckIn.CrisisDetected {
		t.Error("crisis flag should be clear for a calm check-in")
	}
	if result.Plan == nil {
		t.Fatal("expected a generated plan for today's check-in")
	}
	if len(result.Plan.Actions) != 3 {
		t.Errorf("expected 3 actions, got %d", len(result.Plan.Actions))
	}
	if result.BadDay == nil || result.BadDay.Active {
		t.Error("bad-day-mode should stay inactive")
	}
}

func TestCreateCheckIn_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.CreateCheckIn(ctx, "user-1", okRequest(f.date(0))); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	_, err := f.service.CreateCheckIn(ctx, "user-1", okRequest(f.date(0)))
	if !errors.Is(err, ErrCheckInExists) {
		t.Fatalf("expected ErrCheckInExists, got %v", err)
	}
	if f.checkIns.createCalls != 1 {
		t.Errorf("expected 1 create call, got %d", f.checkIns.createCalls)
	}
}

func TestCreateCheckIn_FutureDateRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateCheckIn(context.Background(), "user-1", okRequest(f.date(1)))
	if !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
}

func TestCreateCheckIn_CrisisFlagsAndBadDay(t *testing.T) {
	f := newFixture(t)

	req := okRequest(f.date(0))
	req.Mood = 2
	result, err := f.service.CreateCheckIn(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if result.Alert == nil || result.Alert.Severity != models.SeverityHigh {
		t.Fatalf("mood 2 should raise a high severity alert, got %+v", result.Alert)
	}
	if !result.CheckIn.CrisisDetected {
		t.Error("crisis flag should be set on the stored check-in")
	}
	if result.BadDay == nil || !result.BadDay.Active {
		t.Fatal("mood 2 should activate bad-day-mode")
	}
	if result.Plan == nil || len(result.Plan.Actions) != 1 {
		t.Fatalf("bad-day plan should hold a single gentle action, got %+v", result.Plan)
	}
	if result.Plan.Actions[0].Category != models.CategoryCoping {
		t.Errorf("gentle action should be coping, got %s", result.Plan.Actions[0].Category)
	}
	if f.badDays.saveCalls == 0 {
		t.Error("bad-day state should have been persisted")
	}
}

func TestCreateCheckIn_ReactivationMovesWindowAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Active window from yesterday. Today's low-mood check-in expires it
	// and re-activates in the same evaluation, so Active and the trigger
	// count end up unchanged while the window moves to today.
	f.badDays.Save(ctx, &models.BadDayState{
		UserID:        "user-1",
		Active:        true,
		ActivatedDate: f.date(-1),
		Triggers:      []models.BadDayTrigger{{Type: models.TriggerLowMood}},
	})

	req := okRequest(f.date(0))
	req.Mood = 1
	result, err := f.service.CreateCheckIn(ctx, "user-1", req)
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if result.BadDay == nil || !result.BadDay.Active {
		t.Fatal("mood 1 should keep bad-day-mode active across the day boundary")
	}
	if result.BadDay.ActivatedDate != f.date(0) {
		t.Errorf("activation date = %s, want %s", result.BadDay.ActivatedDate, f.date(0))
	}

	stored, _ := f.badDays.Get(ctx, "user-1")
	if stored.ActivatedDate != f.date(0) {
		t.Errorf("persisted activation date = %s, want %s (re-activation must be saved)", stored.ActivatedDate, f.date(0))
	}
	if !stored.Active {
		t.Error("persisted state should be active")
	}
}

func TestCreateCheckIn_BackfillSkipsPipeline(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.CreateCheckIn(context.Background(), "user-1", okRequest(f.date(-3)))
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if result.Plan != nil {
		t.Error("backfilled check-in should not generate a plan")
	}
	if result.BadDay != nil {
		t.Error("backfilled check-in should not run bad-day transitions")
	}
	if f.plans.createCalls != 0 {
		t.Errorf("expected no plan writes, got %d", f.plans.createCalls)
	}
}

func TestCreateCheckIn_ConsecutiveLowMoodEscalates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for offset := -2; offset < 0; offset++ {
		req := okRequest(f.date(offset))
		req.Mood = 3
		if _, err := f.service.CreateCheckIn(ctx, "user-1", req); err != nil {
			t.Fatalf("seed check-in failed: %v", err)
		}
	}

	req := okRequest(f.date(0))
	req.Mood = 3
	result, err := f.service.CreateCheckIn(ctx, "user-1", req)
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	// Alone mood 3 is low severity; three low days in a row lift it.
	if result.Alert == nil || result.Alert.Severity != models.SeverityMedium {
		t.Fatalf("expected medium severity from the 3-day run, got %+v", result.Alert)
	}
}

func TestCreateCheckIn_TriggerDateActivatesAndAlerts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.triggerDates.Create(ctx, &models.TriggerDate{
		ID: "td-1", UserID: "user-1", Date: f.date(0), Label: "anniversary",
	})
	f.triggerDates.Create(ctx, &models.TriggerDate{
		ID: "td-2", UserID: "user-1", Date: f.date(2), Label: "exam",
	})

	result, err := f.service.CreateCheckIn(ctx, "user-1", okRequest(f.date(0)))
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if result.BadDay == nil || !result.BadDay.Active {
		t.Fatal("a matching trigger date should activate bad-day-mode")
	}
	if len(result.BadDay.Triggers) != 1 || result.BadDay.Triggers[0].Type != models.TriggerDateMatch {
		t.Fatalf("expected one trigger_date trigger, got %+v", result.BadDay.Triggers)
	}
	if len(result.UpcomingAlerts) != 1 || result.UpcomingAlerts[0].DaysAway != 2 {
		t.Fatalf("expected one upcoming alert 2 days away, got %+v", result.UpcomingAlerts)
	}
}

func TestCreateCheckIn_MissedActionsActivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.plans.Create(ctx, &models.DailyPlan{
		UserID: "user-1",
		Date:   f.date(-1),
		Actions: []models.PlannedAction{
			{ID: "a1"}, {ID: "a2"}, {ID: "a3", Completed: true}, {ID: "a4"},
		},
	})

	result, err := f.service.CreateCheckIn(ctx, "user-1", okRequest(f.date(0)))
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if result.BadDay == nil || !result.BadDay.Active {
		t.Fatal("three missed prior-day actions should activate bad-day-mode")
	}
	if len(result.BadDay.Triggers) != 1 || result.BadDay.Triggers[0].Type != models.TriggerMissedActions {
		t.Fatalf("expected one missed_actions trigger, got %+v", result.BadDay.Triggers)
	}
}

func TestAcknowledgeCrisis(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := okRequest(f.date(0))
	req.Anxiety = 9
	created, err := f.service.CreateCheckIn(ctx, "user-1", req)
	if err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}
	if !created.CheckIn.CrisisDetected {
		t.Fatal("anxiety 9 should set the crisis flag")
	}

	acked, err := f.service.AcknowledgeCrisis(ctx, "user-1", f.date(0))
	if err != nil {
		t.Fatalf("AcknowledgeCrisis failed: %v", err)
	}
	if !acked.CrisisHandled {
		t.Error("acknowledged check-in should carry crisis_handled")
	}
}

func TestGetCheckIn_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetCheckIn(context.Background(), "user-1", f.date(0))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
