package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/repository"
)

// actionTemplate is a library entry plans are generated from. TemplateID is
// stable across plans so weekly summaries can count completions.
type actionTemplate struct {
	TemplateID      string
	Title           string
	Category        models.ActionCategory
	DurationMinutes int
}

// The built-in action library, grouped by category. Order within a group is
// preference order for plan generation.
var actionLibrary = map[models.ActionCategory][]actionTemplate{
	models.CategoryCoping: {
		{"breathing-box", "Box breathing", models.CategoryCoping, 2},
		{"grounding-54321", "5-4-3-2-1 grounding", models.CategoryCoping, 2},
		{"journal-feelings", "Write down how you feel", models.CategoryCoping, 5},
		{"body-scan", "Short body scan", models.CategoryCoping, 5},
	},
	models.CategoryLifestyle: {
		{"walk-short", "Take a short walk", models.CategoryLifestyle, 10},
		{"stretch", "Gentle stretching", models.CategoryLifestyle, 5},
		{"hydrate", "Drink a glass of water", models.CategoryLifestyle, 1},
		{"screen-break", "Take a screen break", models.CategoryLifestyle, 10},
	},
	models.CategoryConnection: {
		{"message-friend", "Message someone you trust", models.CategoryConnection, 3},
		{"call-someone", "Call a friend or family member", models.CategoryConnection, 10},
		{"thank-someone", "Thank someone for something small", models.CategoryConnection, 2},
	},
}

type planService struct {
	planRepo repository.PlanRepository
	now      func() time.Time
}

// NewPlanService creates a new plan service. now is injectable for tests;
// pass nil for the wall clock.
func NewPlanService(planRepo repository.PlanRepository, now func() time.Time) PlanService {
	if now == nil {
		now = time.Now
	}
	return &planService{planRepo: planRepo, now: now}
}

// GeneratePlan builds the day's plan from the check-in, applies the
// bad-day-mode adjustment when the window is active, and persists it. Plan
// shaping is a pure function of the inputs; regenerating the same day
// replaces the plan.
func (s *planService) GeneratePlan(ctx context.Context, checkin *models.CheckIn, badDay models.BadDayState) (*models.DailyPlan, error) {
	actions := shapeActions(checkin)
	message := planMessage(checkin)
	actions, message = analytics.AdjustPlanForBadDay(badDay, actions, message)

	plan := &models.DailyPlan{
		ID:        uuid.NewString(),
		UserID:    checkin.UserID,
		Date:      checkin.Date,
		CheckInID: checkin.ID,
		Message:   message,
		Actions:   actions,
	}

	created, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to persist plan: %w", err)
	}
	return created, nil
}

// shapeActions picks one action per category, biased by the check-in:
// high stress or anxiety leads with an extra coping action, low energy
// prefers the shortest option in each group.
func shapeActions(checkin *models.CheckIn) []models.PlannedAction {
	lowEnergy := checkin.Energy <= 3
	stressed := checkin.Stress >= 7 || checkin.Anxiety >= 7

	pick := func(category models.ActionCategory) actionTemplate {
		group := actionLibrary[category]
		if lowEnergy {
			shortest := group[0]
			for _, t := range group[1:] {
				if t.DurationMinutes < shortest.DurationMinutes {
					shortest = t
				}
			}
			return shortest
		}
		// Rotate by day of month for variety without randomness.
		day := dayOfMonth(checkin.Date)
		return group[day%len(group)]
	}

	templates := []actionTemplate{
		pick(models.CategoryCoping),
		pick(models.CategoryLifestyle),
		pick(models.CategoryConnection),
	}
	if stressed {
		extra := actionLibrary[models.CategoryCoping][0]
		if extra.TemplateID == templates[0].TemplateID {
			extra = actionLibrary[models.CategoryCoping][1]
		}
		templates = append([]actionTemplate{extra}, templates...)
	}

	actions := make([]models.PlannedAction, 0, len(templates))
	for _, t := range templates {
		actions = append(actions, models.PlannedAction{
			ID:              uuid.NewString(),
			TemplateID:      t.TemplateID,
			Title:           t.Title,
			Category:        t.Category,
			DurationMinutes: t.DurationMinutes,
		})
	}
	return actions
}

func planMessage(checkin *models.CheckIn) string {
	switch {
	case checkin.Mood >= 7:
		return "You're doing well. Keep the momentum going."
	case checkin.Mood >= 4:
		return "A few small actions can make today better."
	default:
		return "Be kind to yourself today. Start with one small thing."
	}
}

func dayOfMonth(date string) int {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return 0
	}
	return d.Day()
}

func (s *planService) GetToday(ctx context.Context, userID string) (*models.DailyPlan, error) {
	today := s.now().Format(models.DateLayout)
	plan, err := s.planRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, ErrNotFound
	}
	return plan, nil
}

func (s *planService) CompleteAction(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error) {
	return s.mutateAction(ctx, userID, planID, actionID, func(a *models.PlannedAction) {
		a.Completed = true
		a.Skipped = false
	})
}

func (s *planService) SkipAction(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error) {
	return s.mutateAction(ctx, userID, planID, actionID, func(a *models.PlannedAction) {
		a.Skipped = true
		a.Completed = false
	})
}

// SwapAction replaces the action with the next library entry of the same
// category not already in the plan.
func (s *planService) SwapAction(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range plan.Actions {
		if plan.Actions[i].ID == actionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	current := plan.Actions[idx]
	inPlan := make(map[string]bool, len(plan.Actions))
	for _, a := range plan.Actions {
		inPlan[a.TemplateID] = true
	}

	for _, t := range actionLibrary[current.Category] {
		if inPlan[t.TemplateID] {
			continue
		}
		plan.Actions[idx] = models.PlannedAction{
			ID:              uuid.NewString(),
			TemplateID:      t.TemplateID,
			Title:           t.Title,
			Category:        t.Category,
			DurationMinutes: t.DurationMinutes,
		}
		return s.planRepo.UpdateActions(ctx, plan.ID, plan.Actions)
	}

	// Library exhausted for this category; leave the plan unchanged.
	return plan, nil
}

func (s *planService) mutateAction(ctx context.Context, userID, planID, actionID string, mutate func(*models.PlannedAction)) (*models.DailyPlan, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range plan.Actions {
		if plan.Actions[i].ID == actionID {
			mutate(&plan.Actions[i])
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	updated, err := s.planRepo.UpdateActions(ctx, plan.ID, plan.Actions)
	if err != nil {
		return nil, fmt.Errorf("failed to update action: %w", err)
	}
	return updated, nil
}

func (s *planService) ownedPlan(ctx context.Context, userID, planID string) (*models.DailyPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil || plan.UserID != userID {
		return nil, ErrNotFound
	}
	return plan, nil
}
