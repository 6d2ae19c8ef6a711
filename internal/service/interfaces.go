package service

import (
	"context"
	"time"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/models"
)

// CheckInResult is everything a fresh check-in produces: the stored record,
// any crisis advisory, the (possibly bad-day-adjusted) plan, the bad-day
// state after transitions, and upcoming trigger-date alerts.
type CheckInResult struct {
	CheckIn        *models.CheckIn        `json:"check_in"`
	Alert          *models.CrisisAlert    `json:"alert,omitempty"`
	Plan           *models.DailyPlan      `json:"plan,omitempty"`
	BadDay         *models.BadDayState    `json:"bad_day,omitempty"`
	UpcomingAlerts []models.UpcomingAlert `json:"upcoming_alerts,omitempty"`
}

// PatternsResponse bundles weekday statistics with detected trigger
// patterns.
type PatternsResponse struct {
	Weekdays []analytics.WeekdayStat    `json:"weekdays"`
	Patterns []analytics.TriggerPattern `json:"patterns"`
	Days     int                        `json:"days"`
}

// StreaksResponse reports the current and longest check-in streaks.
type StreaksResponse struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CheckInService defines the interface for check-in business logic.
type CheckInService interface {
	CreateCheckIn(ctx context.Context, userID string, req *models.CreateCheckInRequest) (*CheckInResult, error)
	GetCheckIns(ctx context.Context, userID string, days int) ([]models.CheckIn, error)
	GetCheckIn(ctx context.Context, userID, date string) (*models.CheckIn, error)
	AcknowledgeCrisis(ctx context.Context, userID, date string) (*models.CheckIn, error)
}

// PlanService defines the interface for daily plan business logic.
type PlanService interface {
	GeneratePlan(ctx context.Context, checkin *models.CheckIn, badDay models.BadDayState) (*models.DailyPlan, error)
	GetToday(ctx context.Context, userID string) (*models.DailyPlan, error)
	CompleteAction(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error)
	SkipAction(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error)
	SwapAction(ctx context.Context, userID, planID, actionID string) (*models.DailyPlan, error)
}

// BadDayService defines the interface for bad-day-mode business logic.
type BadDayService interface {
	// Get returns the state after applying automatic next-day expiry.
	Get(ctx context.Context, userID string) (*models.BadDayState, error)
	// RecordSOS notes that crisis support was opened, which activates
	// bad-day-mode.
	RecordSOS(ctx context.Context, userID string) (*models.BadDayState, error)
	// Deactivate is the manual override.
	Deactivate(ctx context.Context, userID string) (*models.BadDayState, error)
}

// InsightService defines the interface for prediction/pattern/streak reads.
type InsightService interface {
	GetPrediction(ctx context.Context, userID string) (*analytics.Prediction, error)
	GetPatterns(ctx context.Context, userID string) (*PatternsResponse, error)
	GetStreaks(ctx context.Context, userID string) (*StreaksResponse, error)
}

// TriggerDateService defines the interface for trigger date business logic.
type TriggerDateService interface {
	Create(ctx context.Context, userID string, req *models.CreateTriggerDateRequest) (*models.TriggerDate, error)
	List(ctx context.Context, userID string) ([]models.TriggerDate, error)
	Delete(ctx context.Context, userID, id string) error
	Upcoming(ctx context.Context, userID string, today time.Time) ([]models.UpcomingAlert, error)
}

// SummaryService defines the interface for weekly summaries and the batch.
type SummaryService interface {
	// SummarizeUser builds and persists one user's summary for the week
	// ending yesterday. A (nil, nil) return means skipped: no check-ins in
	// the window.
	SummarizeUser(ctx context.Context, userID string, now time.Time) (*models.WeeklySummary, error)
	// RunWeeklyBatch fans out SummarizeUser across all active users with
	// all-settled semantics and reports counts.
	RunWeeklyBatch(ctx context.Context) (*models.BatchResult, error)
	ListSummaries(ctx context.Context, userID string, weeks int) ([]models.WeeklySummary, error)
}
