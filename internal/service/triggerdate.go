package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/repository"
)

type triggerDateService struct {
	triggerDateRepo repository.TriggerDateRepository
}

func NewTriggerDateService(triggerDateRepo repository.TriggerDateRepository) TriggerDateService {
	return &triggerDateService{triggerDateRepo: triggerDateRepo}
}

func (s *triggerDateService) Create(ctx context.Context, userID string, req *models.CreateTriggerDateRequest) (*models.TriggerDate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	td := &models.TriggerDate{
		ID:           uuid.NewString(),
		UserID:       userID,
		Date:         req.Date,
		Label:        req.Label,
		RepeatYearly: req.RepeatYearly,
		CreatedAt:    time.Now(),
	}
	created, err := s.triggerDateRepo.Create(ctx, td)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger date: %w", err)
	}
	return created, nil
}

func (s *triggerDateService) List(ctx context.Context, userID string) ([]models.TriggerDate, error) {
	dates, err := s.triggerDateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trigger dates: %w", err)
	}
	return dates, nil
}

func (s *triggerDateService) Delete(ctx context.Context, userID, id string) error {
	dates, err := s.triggerDateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list trigger dates: %w", err)
	}
	for _, td := range dates {
		if td.ID == id {
			if err := s.triggerDateRepo.Delete(ctx, userID, id); err != nil {
				return fmt.Errorf("failed to delete trigger date: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

// Upcoming returns trigger dates landing within the advance-notice window.
func (s *triggerDateService) Upcoming(ctx context.Context, userID string, today time.Time) ([]models.UpcomingAlert, error) {
	dates, err := s.triggerDateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trigger dates: %w", err)
	}
	return analytics.UpcomingTriggerDates(dates, today), nil
}
