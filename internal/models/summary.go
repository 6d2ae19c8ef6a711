package models

import "time"

// Trend is the directional classification of a metric across a window.
// Polarity-aware: for inverted metrics (stress, anxiety) a falling mean is
// improving.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Confidence grades a prediction or insight by how much data backs it.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// MetricTrend is the derived summary of one metric over a window. Never
// persisted on its own; embedded in weekly summaries and prediction output.
type MetricTrend struct {
	Average float64 `json:"average"` // rounded to one decimal place
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Trend   Trend   `json:"trend"`
	Values  []int   `json:"values"`
}

// ActionCount pairs an action template with how often it was completed.
type ActionCount struct {
	TemplateID string `json:"template_id"`
	Title      string `json:"title"`
	Count      int    `json:"count"`
}

// WeeklySummary is the immutable once-per-week aggregate report for a user.
type WeeklySummary struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	WeekStart      string                 `json:"week_start"` // YYYY-MM-DD
	WeekEnd        string                 `json:"week_end"`   // YYYY-MM-DD
	Metrics        map[string]MetricTrend `json:"metrics"`
	CompletionRate int                    `json:"completion_rate"` // 0-100
	CurrentStreak  int                    `json:"current_streak"`
	LongestStreak  int                    `json:"longest_streak"`
	Insights       []string               `json:"insights"`    // at most 3
	TopActions     []ActionCount          `json:"top_actions"` // at most 5
	GeneratedAt    time.Time              `json:"generated_at"`
}

// BatchResult reports the outcome of one weekly batch run. Per-user
// failures are isolated; the run as a whole still succeeds.
type BatchResult struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}
