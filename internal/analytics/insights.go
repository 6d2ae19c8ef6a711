package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/havenlabs/haven/backend/internal/models"
)

// MaxInsights caps the insight strings on a weekly summary.
const MaxInsights = 3

// TopActionLimit caps the most-frequently-completed action list.
const TopActionLimit = 5

// CompletionRate is completed/total as a rounded percentage; no actions at
// all is 0, never a division failure.
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// BuildInsights produces up to MaxInsights strings for a weekly summary.
// Priority order: improving-metric call-outs, completion-rate commentary,
// then a low-mood safety nudge.
func BuildInsights(metrics map[string]models.MetricTrend, completionRate int) []string {
	insights := make([]string, 0, MaxInsights)

	// Improving metrics first, in canonical order for stable output.
	for _, name := range models.MetricNames {
		mt, ok := metrics[name]
		if !ok || mt.Trend != models.TrendImproving {
			continue
		}
		if models.InvertedMetrics[name] {
			insights = append(insights, fmt.Sprintf("Your %s has been easing this week", name))
		} else {
			insights = append(insights, fmt.Sprintf("Your %s has been improving this week", name))
		}
		if len(insights) == MaxInsights {
			return insights
		}
	}

	switch {
	case completionRate >= 80:
		insights = append(insights, fmt.Sprintf("You completed %d%% of your planned actions - great consistency", completionRate))
	case completionRate >= 50:
		insights = append(insights, fmt.Sprintf("You completed %d%% of your planned actions - keep going", completionRate))
	default:
		insights = append(insights, "Small steps count. Try picking just one action tomorrow")
	}
	if len(insights) == MaxInsights {
		return insights
	}

	if mood, ok := metrics[models.MetricMood]; ok && mood.Average > 0 && mood.Average <= LowMoodThreshold {
		insights = append(insights, "It's been a heavy week. Your safety plan is there whenever you need it")
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

// TopCompletedActions counts completed actions across the week's plans by
// template id and returns the top TopActionLimit, most frequent first.
// Ties break alphabetically by template id for deterministic output.
func TopCompletedActions(plans []models.DailyPlan) []models.ActionCount {
	counts := make(map[string]*models.ActionCount)
	for _, p := range plans {
		for _, a := range p.Actions {
			if !a.Completed {
				continue
			}
			if c, ok := counts[a.TemplateID]; ok {
				c.Count++
			} else {
				counts[a.TemplateID] = &models.ActionCount{TemplateID: a.TemplateID, Title: a.Title, Count: 1}
			}
		}
	}

	top := make([]models.ActionCount, 0, len(counts))
	for _, c := range counts {
		top = append(top, *c)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].TemplateID < top[j].TemplateID
	})
	if len(top) > TopActionLimit {
		top = top[:TopActionLimit]
	}
	return top
}
