package service

import (
	"context"
	"fmt"
	"time"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/notify"
	"github.com/havenlabs/haven/backend/internal/repository"
)

// PatternWindowDays is how much history feeds the rolling trigger-pattern
// crisis check at check-in time.
const PatternWindowDays = 30

type checkInService struct {
	checkInRepo     repository.CheckInRepository
	planService     PlanService
	badDayRepo      repository.BadDayStateRepository
	planRepo        repository.PlanRepository
	triggerDateRepo repository.TriggerDateRepository
	notifier        notify.Notifier
	now             func() time.Time
}

// NewCheckInService creates a new check-in service. now is injectable for
// tests; pass nil for the wall clock.
func NewCheckInService(
	checkInRepo repository.CheckInRepository,
	planRepo repository.PlanRepository,
	badDayRepo repository.BadDayStateRepository,
	triggerDateRepo repository.TriggerDateRepository,
	planService PlanService,
	notifier notify.Notifier,
	now func() time.Time,
) CheckInService {
	if now == nil {
		now = time.Now
	}
	return &checkInService{
		checkInRepo:     checkInRepo,
		planService:     planService,
		badDayRepo:      badDayRepo,
		planRepo:        planRepo,
		triggerDateRepo: triggerDateRepo,
		notifier:        notifier,
		now:             now,
	}
}

// CreateCheckIn records the day's check-in and runs the synchronous
// pipeline: crisis detection, bad-day-mode transitions, plan generation,
// and trigger-date lookahead. The pipeline is pure over its inputs; only
// the explicit writes below persist anything.
func (s *checkInService) CreateCheckIn(ctx context.Context, userID string, req *models.CreateCheckInRequest) (*CheckInResult, error) {
	log := logger.Ctx(ctx)
	now := s.now()
	today := now.Format(models.DateLayout)

	if req.Date > today {
		return nil, ErrFutureDate
	}

	existing, err := s.checkInRepo.GetByUserAndDate(ctx, userID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing check-in: %w", err)
	}
	if existing != nil {
		return nil, ErrCheckInExists
	}

	checkin := &models.CheckIn{
		UserID:  userID,
		Date:    req.Date,
		Mood:    req.Mood,
		Stress:  req.Stress,
		Sleep:   req.Sleep,
		Energy:  req.Energy,
		Focus:   req.Focus,
		Anxiety: req.Anxiety,
		Journal: req.Journal,
	}

	// Single-check-in severity rules, then the independent rolling
	// consecutive-low-mood check. The stronger classification wins.
	alert := analytics.DetectCrisis(*checkin)
	history, err := s.checkInRepo.GetRecent(ctx, userID, PatternWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent check-ins: %w", err)
	}
	if patternAlert := analytics.DetectPatternCrisis(append(history, *checkin), req.Date); patternAlert != nil {
		if alert == nil || severityRank(patternAlert.Severity) > severityRank(alert.Severity) {
			alert = patternAlert
		}
	}
	checkin.CrisisDetected = alert != nil

	created, err := s.checkInRepo.Create(ctx, checkin)
	if err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	result := &CheckInResult{CheckIn: created, Alert: alert}

	if alert != nil {
		if err := s.notifier.CrisisAdvisory(ctx, userID, *alert); err != nil {
			log.Warn("failed to deliver crisis advisory", logger.Err(err))
		}
	}

	// The state machine and plan only apply to today's check-in; backfilled
	// days just store the record.
	if req.Date != today {
		return result, nil
	}

	badDay, err := s.runBadDayTransitions(ctx, userID, created, now)
	if err != nil {
		return nil, err
	}
	result.BadDay = badDay

	plan, err := s.planService.GeneratePlan(ctx, created, *badDay)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	result.Plan = plan

	triggerDates, err := s.triggerDateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trigger dates: %w", err)
	}
	result.UpcomingAlerts = analytics.UpcomingTriggerDates(triggerDates, now)
	for _, upcoming := range result.UpcomingAlerts {
		if err := s.notifier.UpcomingTriggerDate(ctx, userID, upcoming); err != nil {
			log.Warn("failed to deliver trigger-date alert", logger.Err(err))
		}
	}

	return result, nil
}

// runBadDayTransitions assembles today's events, applies the pure
// transition function, and persists the state when it changed.
func (s *checkInService) runBadDayTransitions(ctx context.Context, userID string, checkin *models.CheckIn, now time.Time) (*models.BadDayState, error) {
	state, err := s.badDayRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bad-day state: %w", err)
	}

	yesterday := now.AddDate(0, 0, -1).Format(models.DateLayout)
	missed := 0
	if priorPlan, err := s.planRepo.GetByUserAndDate(ctx, userID, yesterday); err != nil {
		return nil, fmt.Errorf("failed to load prior plan: %w", err)
	} else if priorPlan != nil {
		missed = priorPlan.MissedActionCount()
	}

	triggerDates, err := s.triggerDateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trigger dates: %w", err)
	}

	mood := checkin.Mood
	next := analytics.EvaluateBadDay(*state, analytics.DayEvents{
		Date:                  checkin.Date,
		Mood:                  &mood,
		MissedActionsPriorDay: missed,
		TriggerDates:          analytics.MatchingTriggerDates(triggerDates, checkin.Date),
		Now:                   now,
	})

	// ActivatedDate participates because an expiry-then-reactivation on
	// the same evaluation keeps Active and the trigger count unchanged
	// while moving the window to today.
	if next.Active != state.Active || next.ActivatedDate != state.ActivatedDate || len(next.Triggers) != len(state.Triggers) {
		saved, err := s.badDayRepo.Save(ctx, &next)
		if err != nil {
			return nil, fmt.Errorf("failed to save bad-day state: %w", err)
		}
		return saved, nil
	}
	return &next, nil
}

func (s *checkInService) GetCheckIns(ctx context.Context, userID string, days int) ([]models.CheckIn, error) {
	if days <= 0 {
		days = 30
	}
	checkins, err := s.checkInRepo.GetRecent(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}
	return checkins, nil
}

func (s *checkInService) GetCheckIn(ctx context.Context, userID, date string) (*models.CheckIn, error) {
	checkin, err := s.checkInRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	if checkin == nil {
		return nil, ErrNotFound
	}
	return checkin, nil
}

// AcknowledgeCrisis marks the check-in's advisory as handled by the user.
// The two crisis flags are the only mutable fields on a check-in.
func (s *checkInService) AcknowledgeCrisis(ctx context.Context, userID, date string) (*models.CheckIn, error) {
	checkin, err := s.GetCheckIn(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if !checkin.CrisisDetected {
		return checkin, nil
	}
	if err := s.checkInRepo.SetCrisisFlags(ctx, checkin.ID, true, true); err != nil {
		return nil, fmt.Errorf("failed to acknowledge crisis: %w", err)
	}
	checkin.CrisisHandled = true
	return checkin, nil
}

func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityHigh:
		return 3
	case models.SeverityMedium:
		return 2
	case models.SeverityLow:
		return 1
	default:
		return 0
	}
}
