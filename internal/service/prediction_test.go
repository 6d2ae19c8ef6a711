package service

import (
	"context"
	"testing"
	"time"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/models"
)

func newInsightFixture(t *testing.T) (*mockCheckInRepository, InsightService, time.Time) {
	t.Helper()
	now := time.Now()
	repo := newMockCheckInRepository()
	return repo, NewInsightService(repo, func() time.Time { return now }), now
}

func TestGetPrediction_NoHistory(t *testing.T) {
	_, svc, _ := newInsightFixture(t)

	pred, err := svc.GetPrediction(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetPrediction failed: %v", err)
	}
	if pred.Available {
		t.Error("prediction should be unavailable without history")
	}
}

func TestGetPrediction_WithHistory(t *testing.T) {
	repo, svc, now := newInsightFixture(t)
	ctx := context.Background()
	for offset := -14; offset <= -1; offset++ {
		repo.Create(ctx, &models.CheckIn{
			UserID: "user-1",
			Date:   now.AddDate(0, 0, offset).Format(models.DateLayout),
			Mood:   6, Stress: 4, Sleep: 7, Energy: 6, Focus: 6, Anxiety: 3,
		})
	}

	pred, err := svc.GetPrediction(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetPrediction failed: %v", err)
	}
	if !pred.Available {
		t.Fatal("prediction should be available with two weeks of history")
	}
	if pred.Mood != 6.0 {
		t.Errorf("Mood = %v, want 6.0 for a flat series", pred.Mood)
	}
	tomorrow := now.AddDate(0, 0, 1).Format(models.DateLayout)
	if pred.Date != tomorrow {
		t.Errorf("Date = %s, want %s", pred.Date, tomorrow)
	}
}

func TestGetStreaks(t *testing.T) {
	repo, svc, now := newInsightFixture(t)
	ctx := context.Background()
	for _, offset := range []int{0, -1, -2, -5, -6} {
		repo.Create(ctx, &models.CheckIn{
			UserID: "user-1",
			Date:   now.AddDate(0, 0, offset).Format(models.DateLayout),
			Mood:   6, Stress: 4, Sleep: 7, Energy: 6, Focus: 6, Anxiety: 3,
		})
	}

	streaks, err := svc.GetStreaks(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetStreaks failed: %v", err)
	}
	if streaks.Current != 3 {
		t.Errorf("Current = %d, want 3", streaks.Current)
	}
	if streaks.Longest != 3 {
		t.Errorf("Longest = %d, want 3", streaks.Longest)
	}
}

func TestGetPatterns(t *testing.T) {
	repo, svc, now := newInsightFixture(t)
	ctx := context.Background()
	for offset := -9; offset <= -7; offset++ {
		repo.Create(ctx, &models.CheckIn{
			UserID: "user-1",
			Date:   now.AddDate(0, 0, offset).Format(models.DateLayout),
			Mood:   2, Stress: 5, Sleep: 6, Energy: 5, Focus: 5, Anxiety: 4,
		})
	}

	patterns, err := svc.GetPatterns(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetPatterns failed: %v", err)
	}
	if patterns.Days != PatternWindowDays {
		t.Errorf("Days = %d, want %d", patterns.Days, PatternWindowDays)
	}
	if len(patterns.Weekdays) != 7 {
		t.Fatalf("expected 7 weekday entries, got %d", len(patterns.Weekdays))
	}
	found := false
	for _, p := range patterns.Patterns {
		if p.Type == analytics.PatternConsecutiveLowMood {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a consecutive_low_mood pattern, got %+v", patterns.Patterns)
	}
}
