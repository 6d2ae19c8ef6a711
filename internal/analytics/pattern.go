package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
)

const (
	// LowMoodThreshold marks a day as low-mood (inclusive).
	LowMoodThreshold = 3

	// ConsecutiveLowDaysTrigger is the run length of consecutive low-mood
	// calendar days that constitutes a trigger pattern.
	ConsecutiveLowDaysTrigger = 3

	// StressSpikeThreshold marks a stress reading as a spike (inclusive).
	StressSpikeThreshold = 8

	// StressSpikeMinDays is the minimum consecutive-day run for a stress
	// spike pattern.
	StressSpikeMinDays = 2

	// MinWeekdaySamples is the minimum observations a weekday needs before
	// it can be flagged harder than average.
	MinWeekdaySamples = 2

	// HardDayMoodMargin is how far below the overall weekday mean a
	// weekday's mean mood must fall to be flagged.
	HardDayMoodMargin = 1.0
)

// WeekdayStat aggregates check-ins for one ISO weekday (Monday=1..Sunday=7).
type WeekdayStat struct {
	Weekday     int     `json:"weekday"`
	Name        string  `json:"name"`
	AverageMood float64 `json:"average_mood"`
	SampleCount int     `json:"sample_count"`
	HarderDay   bool    `json:"harder_day"`
}

// TriggerPatternType distinguishes detected recurring trigger patterns.
type TriggerPatternType string

const (
	PatternConsecutiveLowMood TriggerPatternType = "consecutive_low_mood"
	PatternStressSpike        TriggerPatternType = "stress_spike"
)

// TriggerPattern is one detected run of concerning days.
type TriggerPattern struct {
	Type        TriggerPatternType `json:"type"`
	Description string             `json:"description"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Days        int                `json:"days"`
}

var weekdayNames = [8]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// isoWeekday converts Go's Sunday=0 numbering to ISO Monday=1..Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// AnalyzeWeekdays groups check-ins by ISO weekday and computes per-weekday
// mean mood. A weekday is flagged harder than average when its mean mood
// sits more than HardDayMoodMargin below the overall mean across observed
// weekdays; weekdays with fewer than MinWeekdaySamples observations are
// never flagged. The result always has seven entries, Monday first.
func AnalyzeWeekdays(checkins []models.CheckIn) []WeekdayStat {
	sums := make(map[int]int)
	counts := make(map[int]int)

	for _, c := range checkins {
		d, err := time.Parse(models.DateLayout, c.Date)
		if err != nil {
			continue
		}
		wd := isoWeekday(d)
		sums[wd] += c.Mood
		counts[wd]++
	}

	// Overall mean across weekdays with at least one observation.
	overallSum := 0.0
	observed := 0
	for wd := 1; wd <= 7; wd++ {
		if counts[wd] > 0 {
			overallSum += float64(sums[wd]) / float64(counts[wd])
			observed++
		}
	}
	var overallMean float64
	if observed > 0 {
		overallMean = overallSum / float64(observed)
	}

	stats := make([]WeekdayStat, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		stat := WeekdayStat{Weekday: wd, Name: weekdayNames[wd], SampleCount: counts[wd]}
		if counts[wd] > 0 {
			stat.AverageMood = round1(float64(sums[wd]) / float64(counts[wd]))
			if counts[wd] >= MinWeekdaySamples && stat.AverageMood < overallMean-HardDayMoodMargin {
				stat.HarderDay = true
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

// DetectTriggerPatterns scans the history in chronological order for runs
// of consecutive calendar days where mood is at or below LowMoodThreshold
// (run length >= ConsecutiveLowDaysTrigger) and stress spikes at or above
// StressSpikeThreshold for StressSpikeMinDays+ consecutive days. Runs must
// be contiguous calendar days; a missing day breaks them.
func DetectTriggerPatterns(checkins []models.CheckIn) []TriggerPattern {
	ordered := sortByDate(checkins)

	patterns := make([]TriggerPattern, 0)
	patterns = append(patterns, detectRuns(ordered,
		func(c models.CheckIn) bool { return c.Mood <= LowMoodThreshold },
		ConsecutiveLowDaysTrigger,
		PatternConsecutiveLowMood,
		func(days int) string { return fmt.Sprintf("Mood was low for %d days in a row", days) },
	)...)
	patterns = append(patterns, detectRuns(ordered,
		func(c models.CheckIn) bool { return c.Stress >= StressSpikeThreshold },
		StressSpikeMinDays,
		PatternStressSpike,
		func(days int) string { return fmt.Sprintf("Stress stayed high for %d days in a row", days) },
	)...)
	return patterns
}

// LowMoodRunEndingAt returns the length of the consecutive low-mood
// calendar-day run that ends exactly on the given date, or 0. Used for the
// pattern-based crisis flag on a fresh check-in.
func LowMoodRunEndingAt(checkins []models.CheckIn, date string) int {
	byDate := make(map[string]models.CheckIn, len(checkins))
	for _, c := range checkins {
		byDate[c.Date] = c
	}

	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return 0
	}

	run := 0
	for {
		c, ok := byDate[d.Format(models.DateLayout)]
		if !ok || c.Mood > LowMoodThreshold {
			break
		}
		run++
		d = d.AddDate(0, 0, -1)
	}
	return run
}

func sortByDate(checkins []models.CheckIn) []models.CheckIn {
	ordered := make([]models.CheckIn, len(checkins))
	copy(ordered, checkins)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })
	return ordered
}

func detectRuns(ordered []models.CheckIn, match func(models.CheckIn) bool, minDays int, ptype TriggerPatternType, describe func(int) string) []TriggerPattern {
	patterns := make([]TriggerPattern, 0)

	runStart := -1
	runLen := 0
	var prevDate time.Time

	flush := func(endIdx int) {
		if runLen >= minDays {
			patterns = append(patterns, TriggerPattern{
				Type:        ptype,
				Description: describe(runLen),
				StartDate:   ordered[runStart].Date,
				EndDate:     ordered[endIdx].Date,
				Days:        runLen,
			})
		}
		runStart = -1
		runLen = 0
	}

	for i, c := range ordered {
		d, err := time.Parse(models.DateLayout, c.Date)
		if err != nil {
			continue
		}
		contiguous := runLen > 0 && d.Sub(prevDate) == 24*time.Hour
		if match(c) {
			if runLen == 0 || !contiguous {
				if runLen > 0 {
					flush(i - 1)
				}
				runStart = i
				runLen = 1
			} else {
				runLen++
			}
		} else if runLen > 0 {
			flush(i - 1)
		}
		prevDate = d
	}
	if runLen > 0 {
		flush(len(ordered) - 1)
	}
	return patterns
}
