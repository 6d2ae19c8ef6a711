package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar-day format used everywhere a date (as opposed
// to a timestamp) is stored or compared.
const DateLayout = "2006-01-02"

// Metric score bounds. All six check-in metrics are clamped to this range
// at the API boundary; the analytics core assumes validated input.
const (
	MetricMin = 1
	MetricMax = 10
)

// MaxJournalLength bounds the free-text journal entry.
const MaxJournalLength = 2000

// CheckIn is a user's daily self-reported snapshot. At most one exists per
// (user_id, date). Immutable once created except for the two crisis flags.
type CheckIn struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Mood           int       `json:"mood"`
	Stress         int       `json:"stress"`
	Sleep          int       `json:"sleep"`
	Energy         int       `json:"energy"`
	Focus          int       `json:"focus"`
	Anxiety        int       `json:"anxiety"`
	Journal        *string   `json:"journal,omitempty"`
	CrisisDetected bool      `json:"crisis_detected"`
	CrisisHandled  bool      `json:"crisis_handled"`
	CreatedAt      time.Time `json:"created_at"`
}

// Metric returns the named metric's value. Unknown names return 0.
func (c *CheckIn) Metric(name string) int {
	switch name {
	case MetricMood:
		return c.Mood
	case MetricStress:
		return c.Stress
	case MetricSleep:
		return c.Sleep
	case MetricEnergy:
		return c.Energy
	case MetricFocus:
		return c.Focus
	case MetricAnxiety:
		return c.Anxiety
	default:
		return 0
	}
}

// Metric names as stored in weekly summaries and used by the analytics core.
const (
	MetricMood    = "mood"
	MetricStress  = "stress"
	MetricSleep   = "sleep"
	MetricEnergy  = "energy"
	MetricFocus   = "focus"
	MetricAnxiety = "anxiety"
)

// MetricNames lists all six metrics in canonical order.
var MetricNames = []string{MetricMood, MetricStress, MetricSleep, MetricEnergy, MetricFocus, MetricAnxiety}

// InvertedMetrics maps metric name to polarity: true means lower is better
// (stress, anxiety), false means higher is better.
var InvertedMetrics = map[string]bool{
	MetricMood:    false,
	MetricStress:  true,
	MetricSleep:   false,
	MetricEnergy:  false,
	MetricFocus:   false,
	MetricAnxiety: true,
}

// CreateCheckInRequest is the payload for recording today's check-in.
// Metric ranges are enforced here, at the boundary; the core assumes
// validated input.
type CreateCheckInRequest struct {
	Date    string  `json:"date" binding:"required,datetime=2006-01-02"`
	Mood    int     `json:"mood" binding:"required,min=1,max=10"`
	Stress  int     `json:"stress" binding:"required,min=1,max=10"`
	Sleep   int     `json:"sleep" binding:"required,min=1,max=10"`
	Energy  int     `json:"energy" binding:"required,min=1,max=10"`
	Focus   int     `json:"focus" binding:"required,min=1,max=10"`
	Anxiety int     `json:"anxiety" binding:"required,min=1,max=10"`
	Journal *string `json:"journal" binding:"omitempty,max=2000"`
}

var validate = validator.New()

// Validate re-checks the request outside gin's binding path (the batch and
// tests construct requests directly).
func (r *CreateCheckInRequest) Validate() error {
	return validate.Struct(r)
}
