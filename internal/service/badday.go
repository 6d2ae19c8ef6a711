package service

import (
	"context"
	"fmt"
	"time"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/repository"
)

type badDayService struct {
	badDayRepo repository.BadDayStateRepository
	now        func() time.Time
}

func NewBadDayService(badDayRepo repository.BadDayStateRepository, now func() time.Time) BadDayService {
	if now == nil {
		now = time.Now
	}
	return &badDayService{badDayRepo: badDayRepo, now: now}
}

// Get returns the user's bad-day state, normalizing expiry first: a state
// activated on a previous calendar day reads as inactive even before the
// next check-in comes in.
func (s *badDayService) Get(ctx context.Context, userID string) (*models.BadDayState, error) {
	state, err := s.badDayRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bad-day state: %w", err)
	}

	now := s.now()
	today := now.Format(models.DateLayout)
	if state.Active && state.ActivatedDate != "" && state.ActivatedDate < today {
		next := analytics.EvaluateBadDay(*state, analytics.DayEvents{Date: today, Now: now})
		saved, err := s.badDayRepo.Save(ctx, &next)
		if err != nil {
			return nil, fmt.Errorf("failed to save bad-day state: %w", err)
		}
		return saved, nil
	}
	return state, nil
}

// RecordSOS activates bad-day-mode immediately when the user reaches for
// crisis support.
func (s *badDayService) RecordSOS(ctx context.Context, userID string) (*models.BadDayState, error) {
	state, err := s.badDayRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bad-day state: %w", err)
	}

	now := s.now()
	next := analytics.EvaluateBadDay(*state, analytics.DayEvents{
		Date:        now.Format(models.DateLayout),
		SOSAccessed: true,
		Now:         now,
	})
	saved, err := s.badDayRepo.Save(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to save bad-day state: %w", err)
	}
	return saved, nil
}

// Deactivate turns bad-day-mode off at the user's explicit request.
func (s *badDayService) Deactivate(ctx context.Context, userID string) (*models.BadDayState, error) {
	state, err := s.badDayRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bad-day state: %w", err)
	}
	if !state.Active {
		return state, nil
	}

	next := analytics.DeactivateBadDay(*state, s.now())
	saved, err := s.badDayRepo.Save(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to save bad-day state: %w", err)
	}
	return saved, nil
}
