package analytics

import (
	"fmt"

	"github.com/havenlabs/haven/backend/internal/models"
)

// Crisis detector thresholds. All comparisons are contractual: inclusive
// and exclusive bounds below are exact.
const (
	// MoodHardFloor alone forces at least medium severity; alone it is
	// sufficient for high.
	MoodHardFloor = 2

	// Concerning-indicator bounds (counted toward severity).
	concernAnxietyMin = 7
	concernStressMin  = 7
	concernEnergyMax  = 2

	// Weak single-indicator bounds for low severity.
	highAnxietyThreshold = 8
	highStressThreshold  = 8
	lowSleepThreshold    = 3
)

// DetectCrisis evaluates a single check-in's metrics against the severity
// rules and returns an advisory classification, or nil when no indicator is
// present. Precedence:
//
//  1. count concerning indicators: mood <= 3, anxiety >= 7, stress >= 7,
//     energy <= 2
//  2. mood <= 2 alone, or 3+ concerning -> high
//  3. mood <= 2, or 2+ concerning -> medium
//  4. any single weak indicator (mood <= 3, anxiety >= 8, stress >= 8,
//     sleep <= 3) -> low
//  5. otherwise nil
func DetectCrisis(c models.CheckIn) *models.CrisisAlert {
	var reasons []string
	concerning := 0

	if c.Mood <= LowMoodThreshold {
		concerning++
		reasons = append(reasons, fmt.Sprintf("mood is low (%d/10)", c.Mood))
	}
	if c.Anxiety >= concernAnxietyMin {
		concerning++
		reasons = append(reasons, fmt.Sprintf("anxiety is high (%d/10)", c.Anxiety))
	}
	if c.Stress >= concernStressMin {
		concerning++
		reasons = append(reasons, fmt.Sprintf("stress is high (%d/10)", c.Stress))
	}
	if c.Energy <= concernEnergyMax {
		concerning++
		reasons = append(reasons, fmt.Sprintf("energy is very low (%d/10)", c.Energy))
	}

	switch {
	case c.Mood <= MoodHardFloor || concerning >= 3:
		return &models.CrisisAlert{Severity: models.SeverityHigh, Reasons: reasons}
	case concerning >= 2:
		return &models.CrisisAlert{Severity: models.SeverityMedium, Reasons: reasons}
	}

	// Weak single indicators.
	if c.Mood <= LowMoodThreshold || c.Anxiety >= highAnxietyThreshold || c.Stress >= highStressThreshold {
		return &models.CrisisAlert{Severity: models.SeverityLow, Reasons: reasons}
	}
	if c.Sleep <= lowSleepThreshold {
		return &models.CrisisAlert{
			Severity: models.SeverityLow,
			Reasons:  append(reasons, fmt.Sprintf("sleep has been poor (%d/10)", c.Sleep)),
		}
	}

	return nil
}

// DetectPatternCrisis flags a rolling-window crisis independent of any
// single check-in: a consecutive low-mood run ending on the given date of
// ConsecutiveLowDaysTrigger days or more.
func DetectPatternCrisis(checkins []models.CheckIn, date string) *models.CrisisAlert {
	run := LowMoodRunEndingAt(checkins, date)
	if run < ConsecutiveLowDaysTrigger {
		return nil
	}
	return &models.CrisisAlert{
		Severity: models.SeverityMedium,
		Reasons:  []string{fmt.Sprintf("mood has been low for %d days in a row", run)},
	}
}
