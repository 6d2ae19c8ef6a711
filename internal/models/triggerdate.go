package models

import "time"

// TriggerDate is a user-declared calendar date of personal significance.
// The predictor and bad-day-mode machine consult these read-only.
type TriggerDate struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Label        string    `json:"label"`
	RepeatYearly bool      `json:"repeat_yearly"`
	CreatedAt    time.Time `json:"created_at"`
}

// Matches reports whether the trigger date falls on the given calendar day,
// honoring the annual-repeat flag (month and day compared, year ignored).
func (t *TriggerDate) Matches(date string) bool {
	if t.Date == date {
		return true
	}
	if t.RepeatYearly && len(t.Date) == len(DateLayout) && len(date) == len(DateLayout) {
		return t.Date[5:] == date[5:]
	}
	return false
}

// CreateTriggerDateRequest is the payload for declaring a trigger date.
type CreateTriggerDateRequest struct {
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	Label        string `json:"label" binding:"required,max=200"`
	RepeatYearly bool   `json:"repeat_yearly"`
}

// Validate re-checks the request outside gin's binding path.
func (r *CreateTriggerDateRequest) Validate() error {
	return validate.Struct(r)
}
