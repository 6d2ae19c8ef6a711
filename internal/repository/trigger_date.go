package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

type triggerDateRepository struct {
	client *supabase.Client
}

// NewTriggerDateRepository creates a new trigger date repository.
func NewTriggerDateRepository(client *supabase.Client) TriggerDateRepository {
	return &triggerDateRepository{client: client}
}

func (r *triggerDateRepository) Create(ctx context.Context, td *models.TriggerDate) (*models.TriggerDate, error) {
	data := map[string]interface{}{
		"id":            td.ID,
		"user_id":       td.UserID,
		"date":          td.Date,
		"label":         td.Label,
		"repeat_yearly": td.RepeatYearly,
	}

	body, err := r.client.Insert(ctx, "trigger_dates", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger date: %w", err)
	}

	var rows []models.TriggerDate
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no trigger date returned")
	}
	return &rows[0], nil
}

func (r *triggerDateRepository) GetByUserID(ctx context.Context, userID string) ([]models.TriggerDate, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"order":   "date.asc",
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "trigger_dates", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get trigger dates: %w", err)
	}

	var rows []models.TriggerDate
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return rows, nil
}

func (r *triggerDateRepository) Delete(ctx context.Context, userID, id string) error {
	// Ownership is checked by the service before delete; the filter here is
	// the id alone.
	if err := r.client.Delete(ctx, "trigger_dates", id); err != nil {
		return fmt.Errorf("failed to delete trigger date: %w", err)
	}
	return nil
}
