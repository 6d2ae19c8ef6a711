package analytics

import (
	"reflect"
	"testing"

	"github.com/havenlabs/haven/backend/internal/models"
)

func TestSummarizeMetric_Empty(t *testing.T) {
	got := SummarizeMetric(nil, false)

	if got.Average != 0 || got.Min != 0 || got.Max != 0 {
		t.Errorf("expected all-zero summary, got %+v", got)
	}
	if got.Trend != models.TrendStable {
		t.Errorf("expected stable trend for empty input, got %s", got.Trend)
	}
	if got.Values == nil || len(got.Values) != 0 {
		t.Errorf("expected empty non-nil values, got %v", got.Values)
	}
}

func TestSummarizeMetric_AverageAndExtrema(t *testing.T) {
	tests := []struct {
		name    string
		values  []int
		average float64
		min     int
		max     int
	}{
		{"single value", []int{7}, 7.0, 7, 7},
		{"rounded to one decimal", []int{5, 6, 6}, 5.7, 5, 6},
		{"mixed", []int{1, 10, 4, 4}, 4.8, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeMetric(tt.values, false)
			if got.Average != tt.average {
				t.Errorf("average = %v, want %v", got.Average, tt.average)
			}
			if got.Min != tt.min || got.Max != tt.max {
				t.Errorf("min/max = %d/%d, want %d/%d", got.Min, got.Max, tt.min, tt.max)
			}
			if !reflect.DeepEqual(got.Values, tt.values) {
				t.Errorf("values = %v, want %v", got.Values, tt.values)
			}
		})
	}
}

func TestSummarizeMetric_Trend(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		inverted bool
		want     models.Trend
	}{
		{"fewer than 2 values is stable", []int{9}, false, models.TrendStable},
		{"flat is stable", []int{5, 5, 5, 5}, false, models.TrendStable},
		{"below margin is stable", []int{5, 5, 5, 6, 5, 5}, false, models.TrendStable},
		{"rising direct improves", []int{3, 3, 6, 6}, false, models.TrendImproving},
		{"falling direct declines", []int{7, 7, 4, 4}, false, models.TrendDeclining},
		{"rising inverted declines", []int{3, 3, 6, 6}, true, models.TrendDeclining},
		{"falling inverted improves", []int{7, 7, 4, 4}, true, models.TrendImproving},
		{"odd length puts extra value in second half", []int{2, 8, 8}, false, models.TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeMetric(tt.values, tt.inverted)
			if got.Trend != tt.want {
				t.Errorf("trend = %s, want %s", got.Trend, tt.want)
			}
		})
	}
}

// The same shape of change must classify symmetrically under polarity
// inversion.
func TestSummarizeMetric_PolaritySymmetry(t *testing.T) {
	values := []int{2, 3, 7, 8} // second half clearly higher

	direct := SummarizeMetric(values, false)
	inverted := SummarizeMetric(values, true)

	if direct.Trend != models.TrendImproving {
		t.Errorf("direct trend = %s, want improving", direct.Trend)
	}
	if inverted.Trend != models.TrendDeclining {
		t.Errorf("inverted trend = %s, want declining", inverted.Trend)
	}
}
