package analytics

import (
	"sort"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
)

// CurrentStreak computes the consecutive-day streak ending today or
// yesterday. If the most recent activity date is older than yesterday the
// streak is broken (0). Duplicate dates never inflate the count.
func CurrentStreak(dates []string, today time.Time) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}

	latest := days[len(days)-1]
	// The calendar day comes from the formatted date, so today's zone
	// decides which day it is. Truncating the instant would use UTC and
	// skip ahead a day during evening hours west of UTC.
	todayDay, _ := time.Parse(models.DateLayout, today.Format(models.DateLayout))
	yesterday := todayDay.AddDate(0, 0, -1)
	if latest.Before(yesterday) {
		return 0
	}

	present := make(map[string]bool, len(days))
	for _, d := range days {
		present[d.Format(models.DateLayout)] = true
	}

	streak := 0
	for d := latest; present[d.Format(models.DateLayout)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak scans the full history for the maximal run of contiguous
// calendar days, independent of recency.
func LongestStreak(dates []string) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// uniqueDays parses, deduplicates, and sorts ascending.
func uniqueDays(dates []string) []time.Time {
	seen := make(map[string]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		if seen[s] {
			continue
		}
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			continue
		}
		seen[s] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
