package models

// Severity classifies a crisis advisory. Advisory only: it informs UI
// prompting, never an automated emergency response.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// CrisisAlert is the transient output of the crisis detector for one
// check-in (or a consecutive-low-mood pattern). Not necessarily persisted.
type CrisisAlert struct {
	Severity Severity `json:"severity"`
	Reasons  []string `json:"reasons"`
}

// UpcomingAlert is a proactive heads-up for a declared trigger date 1-2
// days ahead.
type UpcomingAlert struct {
	TriggerDateID string `json:"trigger_date_id"`
	Label         string `json:"label"`
	Date          string `json:"date"`
	DaysAway      int    `json:"days_away"`
}
