package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
)

func TestTriggerDateService_CreateAndList(t *testing.T) {
	repo := newMockTriggerDateRepository()
	svc := NewTriggerDateService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", &models.CreateTriggerDateRequest{
		Date: "2026-11-05", Label: "anniversary", RepeatYearly: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created trigger date should get an ID")
	}
	if created.UserID != "user-1" || !created.RepeatYearly {
		t.Errorf("created = %+v", created)
	}

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Label != "anniversary" {
		t.Fatalf("list = %+v", list)
	}
}

func TestTriggerDateService_CreateInvalid(t *testing.T) {
	svc := NewTriggerDateService(newMockTriggerDateRepository())

	_, err := svc.Create(context.Background(), "user-1", &models.CreateTriggerDateRequest{
		Date: "November 5th", Label: "anniversary",
	})
	if err == nil {
		t.Fatal("expected a validation error for a malformed date")
	}
}

func TestTriggerDateService_Delete(t *testing.T) {
	repo := newMockTriggerDateRepository()
	svc := NewTriggerDateService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", &models.CreateTriggerDateRequest{
		Date: "2026-11-05", Label: "anniversary",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another user cannot delete it.
	if err := svc.Delete(ctx, "user-2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTriggerDateService_Upcoming(t *testing.T) {
	repo := newMockTriggerDateRepository()
	svc := NewTriggerDateService(repo)
	ctx := context.Background()
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, td := range []models.CreateTriggerDateRequest{
		{Date: "2026-03-11", Label: "tomorrow"},
		{Date: "2026-03-12", Label: "in two days"},
		{Date: "2026-03-10", Label: "today"},
		{Date: "2026-03-20", Label: "far away"},
	} {
		if _, err := svc.Create(ctx, "user-1", &td); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	upcoming, err := svc.Upcoming(ctx, "user-1", today)
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming alerts, got %d: %+v", len(upcoming), upcoming)
	}
	for _, alert := range upcoming {
		if alert.DaysAway < 1 || alert.DaysAway > 2 {
			t.Errorf("alert %s is %d days away, want 1 or 2", alert.Label, alert.DaysAway)
		}
	}
}
