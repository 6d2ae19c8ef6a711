package models

import "time"

// ActionCategory classifies a planned action.
type ActionCategory string

const (
	CategoryCoping     ActionCategory = "coping"
	CategoryLifestyle  ActionCategory = "lifestyle"
	CategoryConnection ActionCategory = "connection"
)

// PlannedAction is one entry in a daily plan. TemplateID identifies the
// library action this instance was generated from; completion counts in
// weekly summaries aggregate on it.
type PlannedAction struct {
	ID              string         `json:"id"`
	TemplateID      string         `json:"template_id"`
	Title           string         `json:"title"`
	Category        ActionCategory `json:"category"`
	DurationMinutes int            `json:"duration_minutes"`
	Completed       bool           `json:"completed"`
	Skipped         bool           `json:"skipped"`
}

// DailyPlan is the generated plan for one user-day, referencing the
// check-in that produced it. Actions are mutated by complete/skip/swap;
// the plan row itself is otherwise stable.
type DailyPlan struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Date      string          `json:"date"` // YYYY-MM-DD
	CheckInID string          `json:"check_in_id"`
	Message   string          `json:"message"`
	Actions   []PlannedAction `json:"actions"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MissedActionCount returns how many actions were neither completed nor
// skipped-with-intent; used by the bad-day-mode activation rules.
func (p *DailyPlan) MissedActionCount() int {
	missed := 0
	for _, a := range p.Actions {
		if !a.Completed && !a.Skipped {
			missed++
		}
	}
	return missed
}

// CompletionCounts returns (completed, total) across the plan's actions.
func (p *DailyPlan) CompletionCounts() (completed, total int) {
	for _, a := range p.Actions {
		total++
		if a.Completed {
			completed++
		}
	}
	return completed, total
}
