package analytics

import (
	"fmt"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
)

const (
	// BadDayMoodTrigger activates bad-day-mode (inclusive). Distinct from
	// the detector's severity thresholds.
	BadDayMoodTrigger = 2

	// BadDayRecoveryMood deactivates an active window on a subsequent
	// check-in (inclusive).
	BadDayRecoveryMood = 3

	// MissedActionsTrigger is how many actions missed on a prior day
	// activate bad-day-mode.
	MissedActionsTrigger = 3

	// TriggerDateLookaheadDays is how far ahead declared trigger dates
	// produce proactive alerts.
	TriggerDateLookaheadDays = 2
)

// DayEvents collects everything about "today" that the bad-day-mode
// machine looks at. Mood is nil when no check-in was recorded yet.
type DayEvents struct {
	Date                  string // YYYY-MM-DD
	Mood                  *int
	SOSAccessed           bool
	MissedActionsPriorDay int
	TriggerDates          []models.TriggerDate // declared dates matching today
	Now                   time.Time
}

// EvaluateBadDay is the pure transition function: current state + today's
// events in, new state out. It never mutates its input. Next-day expiry is
// applied before today's triggers, so an event today can re-activate a
// window that just lapsed. Re-triggering while active appends trigger
// records without stacking activations.
func EvaluateBadDay(state models.BadDayState, ev DayEvents) models.BadDayState {
	next := cloneState(state)

	// Automatic deactivation: calendar date advanced past activation.
	if next.Active && next.ActivatedDate != "" && ev.Date > next.ActivatedDate {
		next = deactivate(next, ev.Now)
	}

	// Recovery: a check-in today at or above the recovery mood. Evaluated
	// independently of any crisis classification the same check-in earns.
	if next.Active && ev.Mood != nil && *ev.Mood >= BadDayRecoveryMood {
		next = deactivate(next, ev.Now)
	}

	triggers := collectTriggers(ev)
	if len(triggers) == 0 {
		return next
	}

	if !next.Active {
		next.Active = true
		next.ActivatedDate = ev.Date
		next.Triggers = triggers
	} else {
		next.Triggers = append(next.Triggers, triggers...)
	}
	next.UpdatedAt = ev.Now
	return next
}

// DeactivateBadDay is the explicit manual override path.
func DeactivateBadDay(state models.BadDayState, now time.Time) models.BadDayState {
	next := cloneState(state)
	if !next.Active {
		return next
	}
	return deactivate(next, now)
}

func collectTriggers(ev DayEvents) []models.BadDayTrigger {
	var triggers []models.BadDayTrigger

	if ev.Mood != nil && *ev.Mood <= BadDayMoodTrigger {
		triggers = append(triggers, models.BadDayTrigger{
			Type:        models.TriggerLowMood,
			Description: fmt.Sprintf("mood %d/10 on %s", *ev.Mood, ev.Date),
			Timestamp:   ev.Now,
		})
	}
	if ev.SOSAccessed {
		triggers = append(triggers, models.BadDayTrigger{
			Type:        models.TriggerSOSAccess,
			Description: "crisis support was opened",
			Timestamp:   ev.Now,
		})
	}
	if ev.MissedActionsPriorDay >= MissedActionsTrigger {
		triggers = append(triggers, models.BadDayTrigger{
			Type:        models.TriggerMissedActions,
			Description: fmt.Sprintf("%d planned actions missed the previous day", ev.MissedActionsPriorDay),
			Timestamp:   ev.Now,
		})
	}
	for _, td := range ev.TriggerDates {
		triggers = append(triggers, models.BadDayTrigger{
			Type:        models.TriggerDateMatch,
			Description: fmt.Sprintf("today matches %q", td.Label),
			Timestamp:   ev.Now,
		})
	}
	return triggers
}

// deactivate turns the window off but keeps the trigger records, so the
// state returned for a deactivation still shows what caused the window.
// The next activation starts a fresh trigger list.
func deactivate(state models.BadDayState, now time.Time) models.BadDayState {
	state.Active = false
	state.ActivatedDate = ""
	state.UpdatedAt = now
	return state
}

func cloneState(state models.BadDayState) models.BadDayState {
	next := state
	if state.Triggers != nil {
		next.Triggers = make([]models.BadDayTrigger, len(state.Triggers))
		copy(next.Triggers, state.Triggers)
	}
	return next
}

// UpcomingTriggerDates returns declared dates falling within the lookahead
// window after today (1..TriggerDateLookaheadDays days away), honoring
// annual repeats.
func UpcomingTriggerDates(dates []models.TriggerDate, today time.Time) []models.UpcomingAlert {
	var alerts []models.UpcomingAlert
	for ahead := 1; ahead <= TriggerDateLookaheadDays; ahead++ {
		day := today.AddDate(0, 0, ahead).Format(models.DateLayout)
		for _, td := range dates {
			if td.Matches(day) {
				alerts = append(alerts, models.UpcomingAlert{
					TriggerDateID: td.ID,
					Label:         td.Label,
					Date:          day,
					DaysAway:      ahead,
				})
			}
		}
	}
	return alerts
}

// MatchingTriggerDates filters declared dates to those falling on the given
// day.
func MatchingTriggerDates(dates []models.TriggerDate, date string) []models.TriggerDate {
	var matched []models.TriggerDate
	for _, td := range dates {
		if td.Matches(date) {
			matched = append(matched, td)
		}
	}
	return matched
}

// gentleMessage replaces the standard plan message while bad-day-mode is
// active.
const gentleMessage = "Today can be small. One tiny step is enough."

// AdjustPlanForBadDay reduces a plan to a single short coping-biased action
// with softened messaging. Pure: applied at plan-generation time, never as
// a retroactive mutation. Inactive state returns the inputs unchanged.
func AdjustPlanForBadDay(state models.BadDayState, actions []models.PlannedAction, message string) ([]models.PlannedAction, string) {
	if !state.Active || len(actions) == 0 {
		return actions, message
	}

	pick := actions[0]
	found := false
	for _, a := range actions {
		if a.Category == models.CategoryCoping && a.DurationMinutes <= 2 {
			pick = a
			found = true
			break
		}
	}
	if !found {
		for _, a := range actions {
			if a.Category == models.CategoryCoping {
				pick = a
				found = true
				break
			}
		}
	}
	if !found {
		for _, a := range actions {
			if a.DurationMinutes < pick.DurationMinutes {
				pick = a
			}
		}
	}
	if pick.DurationMinutes > 2 {
		pick.DurationMinutes = 2
	}

	return []models.PlannedAction{pick}, gentleMessage
}
