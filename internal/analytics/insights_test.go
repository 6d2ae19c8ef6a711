package analytics

import (
	"strings"
	"testing"

	"github.com/havenlabs/haven/backend/internal/models"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{6, 8, 75},
		{0, 0, 0},
		{3, 3, 100},
		{1, 3, 33},
		{2, 3, 67},
	}

	for _, tt := range tests {
		if got := CompletionRate(tt.completed, tt.total); got != tt.want {
			t.Errorf("CompletionRate(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestBuildInsights_ImprovingMetricsFirst(t *testing.T) {
	metrics := map[string]models.MetricTrend{
		models.MetricMood:   {Average: 6.0, Trend: models.TrendImproving},
		models.MetricStress: {Average: 4.0, Trend: models.TrendImproving},
		models.MetricSleep:  {Average: 6.0, Trend: models.TrendStable},
	}

	insights := BuildInsights(metrics, 90)
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d: %v", len(insights), insights)
	}
	if !strings.Contains(insights[0], "mood") {
		t.Errorf("first insight should call out mood: %q", insights[0])
	}
	if !strings.Contains(insights[1], "stress") {
		t.Errorf("second insight should call out stress: %q", insights[1])
	}
	if !strings.Contains(insights[2], "90%") {
		t.Errorf("third insight should be completion commentary: %q", insights[2])
	}
}

func TestBuildInsights_CapAtThree(t *testing.T) {
	metrics := map[string]models.MetricTrend{
		models.MetricMood:   {Average: 6.0, Trend: models.TrendImproving},
		models.MetricSleep:  {Average: 6.0, Trend: models.TrendImproving},
		models.MetricEnergy: {Average: 6.0, Trend: models.TrendImproving},
		models.MetricFocus:  {Average: 6.0, Trend: models.TrendImproving},
	}

	if insights := BuildInsights(metrics, 50); len(insights) != MaxInsights {
		t.Errorf("expected cap at %d, got %d", MaxInsights, len(insights))
	}
}

func TestBuildInsights_LowMoodSafetyNudge(t *testing.T) {
	metrics := map[string]models.MetricTrend{
		models.MetricMood: {Average: 2.5, Trend: models.TrendStable},
	}

	insights := BuildInsights(metrics, 40)
	found := false
	for _, s := range insights {
		if strings.Contains(s, "safety plan") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a safety nudge for low average mood, got %v", insights)
	}
}

func TestTopCompletedActions(t *testing.T) {
	plans := []models.DailyPlan{
		{Actions: []models.PlannedAction{
			{TemplateID: "breathing", Title: "Box breathing", Completed: true},
			{TemplateID: "walk", Title: "Short walk", Completed: true},
			{TemplateID: "journal", Title: "Journal", Completed: false},
		}},
		{Actions: []models.PlannedAction{
			{TemplateID: "breathing", Title: "Box breathing", Completed: true},
			{TemplateID: "walk", Title: "Short walk", Completed: false},
		}},
	}

	top := TopCompletedActions(plans)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].TemplateID != "breathing" || top[0].Count != 2 {
		t.Errorf("top entry = %+v, want breathing x2", top[0])
	}
	if top[1].TemplateID != "walk" || top[1].Count != 1 {
		t.Errorf("second entry = %+v, want walk x1", top[1])
	}
}

func TestTopCompletedActions_LimitAndTies(t *testing.T) {
	plan := models.DailyPlan{}
	for _, id := range []string{"f", "e", "d", "c", "b", "a"} {
		plan.Actions = append(plan.Actions, models.PlannedAction{TemplateID: id, Completed: true})
	}

	top := TopCompletedActions([]models.DailyPlan{plan})
	if len(top) != TopActionLimit {
		t.Fatalf("expected %d entries, got %d", TopActionLimit, len(top))
	}
	if top[0].TemplateID != "a" {
		t.Errorf("ties should break alphabetically, got %s first", top[0].TemplateID)
	}
}
