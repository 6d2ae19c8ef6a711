package analytics

import (
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
)

const (
	// RecentTrendWindow is how many of the most recent check-ins feed the
	// short-term trend estimate.
	RecentTrendWindow = 7

	// Weekday sample counts for prediction confidence tiers.
	weekdaySamplesHigh   = 4
	weekdaySamplesMedium = 2

	// weekdayWeight blends the day-of-week mean with the recent-trend
	// estimate when both are available.
	weekdayWeight = 0.6
)

// Prediction is tomorrow's mood forecast. Available=false is the defined
// "no prediction yet" result, not an error: it means no history at all.
type Prediction struct {
	Available   bool              `json:"available"`
	Date        string            `json:"date,omitempty"` // YYYY-MM-DD
	Mood        float64           `json:"mood,omitempty"` // clamped to 1-10, one decimal
	Confidence  models.Confidence `json:"confidence,omitempty"`
	WeekdayName string            `json:"weekday_name,omitempty"`
	SampleSize  int               `json:"sample_size,omitempty"`
}

// PredictMood forecasts mood for the day after `today` from the weekday
// pattern plus the recent trend. If the target weekday has no prior
// observations it falls back to the recent-trend estimate alone at low
// confidence. With no history at all it reports no prediction available.
func PredictMood(checkins []models.CheckIn, today time.Time) Prediction {
	if len(checkins) == 0 {
		return Prediction{}
	}

	tomorrow := today.AddDate(0, 0, 1)
	targetWeekday := isoWeekday(tomorrow)

	stats := AnalyzeWeekdays(checkins)
	var weekdayStat WeekdayStat
	for _, s := range stats {
		if s.Weekday == targetWeekday {
			weekdayStat = s
			break
		}
	}

	recent := recentMoods(checkins, RecentTrendWindow)
	recentEstimate := trendAdjustedMean(recent)

	var predicted float64
	var confidence models.Confidence

	switch {
	case weekdayStat.SampleCount == 0:
		predicted = recentEstimate
		confidence = models.ConfidenceLow
	default:
		predicted = weekdayWeight*weekdayStat.AverageMood + (1-weekdayWeight)*recentEstimate
		switch {
		case weekdayStat.SampleCount >= weekdaySamplesHigh && len(recent) >= RecentTrendWindow:
			confidence = models.ConfidenceHigh
		case weekdayStat.SampleCount >= weekdaySamplesMedium:
			confidence = models.ConfidenceMedium
		default:
			confidence = models.ConfidenceLow
		}
	}

	return Prediction{
		Available:   true,
		Date:        tomorrow.Format(models.DateLayout),
		Mood:        round1(clampMetric(predicted)),
		Confidence:  confidence,
		WeekdayName: weekdayNames[targetWeekday],
		SampleSize:  weekdayStat.SampleCount,
	}
}

// recentMoods returns up to n mood values from the most recent check-ins,
// oldest first.
func recentMoods(checkins []models.CheckIn, n int) []int {
	ordered := sortByDate(checkins)
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	moods := make([]int, len(ordered))
	for i, c := range ordered {
		moods[i] = c.Mood
	}
	return moods
}

// trendAdjustedMean is the recent mean nudged halfway toward where the
// half-split trend says the series is heading.
func trendAdjustedMean(moods []int) float64 {
	if len(moods) == 0 {
		return 0
	}
	avg := mean(moods)
	if len(moods) < 2 {
		return avg
	}
	mid := len(moods) / 2
	delta := mean(moods[mid:]) - mean(moods[:mid])
	return avg + delta/2
}
