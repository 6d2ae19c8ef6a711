// Package analytics is the shared pure-function core: metric summaries,
// weekday patterns, next-day prediction, crisis detection, bad-day-mode
// transitions, and streaks. It is invoked both synchronously at check-in
// time and by the weekly batch, holds no state, and is idempotent over the
// same inputs.
package analytics

import (
	"math"

	"github.com/havenlabs/haven/backend/internal/models"
)

// TrendStabilityMargin is the minimum half-to-half mean difference before a
// sequence is classified as anything other than stable.
const TrendStabilityMargin = 0.5

// SummarizeMetric computes average/min/max/trend for one metric's value
// series, in chronological order. inverted marks metrics where lower is
// better (stress, anxiety). An empty series yields the zero stable summary,
// not an error: callers branch on emptiness.
func SummarizeMetric(values []int, inverted bool) models.MetricTrend {
	if len(values) == 0 {
		return models.MetricTrend{Trend: models.TrendStable, Values: []int{}}
	}

	sum := 0
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values {
		sum += v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	return models.MetricTrend{
		Average: round1(float64(sum) / float64(len(values))),
		Min:     minVal,
		Max:     maxVal,
		Trend:   classifyTrend(values, inverted),
		Values:  values,
	}
}

// classifyTrend splits the series at the floor midpoint (odd length puts
// the extra element in the second half) and compares half means. Fewer than
// 2 values is always stable.
func classifyTrend(values []int, inverted bool) models.Trend {
	if len(values) < 2 {
		return models.TrendStable
	}

	mid := len(values) / 2
	firstMean := mean(values[:mid])
	secondMean := mean(values[mid:])

	diff := secondMean - firstMean
	if math.Abs(diff) < TrendStabilityMargin {
		return models.TrendStable
	}

	rising := diff > 0
	if inverted {
		rising = !rising
	}
	if rising {
		return models.TrendImproving
	}
	return models.TrendDeclining
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampMetric(v float64) float64 {
	if v < models.MetricMin {
		return models.MetricMin
	}
	if v > models.MetricMax {
		return models.MetricMax
	}
	return v
}
