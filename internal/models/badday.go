package models

import "time"

// BadDayTriggerType tags what caused a bad-day-mode activation.
type BadDayTriggerType string

const (
	TriggerLowMood       BadDayTriggerType = "low_mood"
	TriggerSOSAccess     BadDayTriggerType = "sos_access"
	TriggerMissedActions BadDayTriggerType = "missed_actions"
	TriggerDateMatch     BadDayTriggerType = "trigger_date"
)

// BadDayTrigger records one event that caused (or re-confirmed) an
// activation.
type BadDayTrigger struct {
	Type        BadDayTriggerType `json:"type"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
}

// BadDayState is the per-user bad-day-mode record: at most one open
// activation window at a time. Re-triggering while active appends trigger
// records; it never stacks activations.
type BadDayState struct {
	UserID        string          `json:"user_id"`
	Active        bool            `json:"active"`
	ActivatedDate string          `json:"activated_date,omitempty"` // YYYY-MM-DD
	Triggers      []BadDayTrigger `json:"triggers,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
