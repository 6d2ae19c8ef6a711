package repository

import (
	"context"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
)

// CheckInRepository defines the interface for check-in data access.
type CheckInRepository interface {
	Create(ctx context.Context, checkin *models.CheckIn) (*models.CheckIn, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (*models.CheckIn, error)
	GetByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.CheckIn, error)
	GetRecent(ctx context.Context, userID string, days int) ([]models.CheckIn, error)
	SetCrisisFlags(ctx context.Context, id string, detected, handled bool) error
	// ActiveUserIDs returns the distinct users with at least one check-in
	// since the given time. Drives batch user discovery.
	ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

// PlanRepository defines the interface for daily plan data access.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.DailyPlan) (*models.DailyPlan, error)
	GetByID(ctx context.Context, id string) (*models.DailyPlan, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (*models.DailyPlan, error)
	GetByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.DailyPlan, error)
	UpdateActions(ctx context.Context, id string, actions []models.PlannedAction) (*models.DailyPlan, error)
}

// TriggerDateRepository defines the interface for trigger date data access.
type TriggerDateRepository interface {
	Create(ctx context.Context, td *models.TriggerDate) (*models.TriggerDate, error)
	GetByUserID(ctx context.Context, userID string) ([]models.TriggerDate, error)
	Delete(ctx context.Context, userID, id string) error
}

// BadDayStateRepository defines the interface for the per-user
// bad-day-mode state blob.
type BadDayStateRepository interface {
	Get(ctx context.Context, userID string) (*models.BadDayState, error)
	Save(ctx context.Context, state *models.BadDayState) (*models.BadDayState, error)
}

// SummaryRepository defines the interface for weekly summary data access.
// Summaries are insert-only.
type SummaryRepository interface {
	Create(ctx context.Context, summary *models.WeeklySummary) (*models.WeeklySummary, error)
	GetByUserAndWeekStart(ctx context.Context, userID, weekStart string) (*models.WeeklySummary, error)
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error)
}
