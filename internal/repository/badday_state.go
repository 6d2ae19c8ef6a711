package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

type badDayStateRepository struct {
	client *supabase.Client
}

// NewBadDayStateRepository creates a new bad-day-mode state repository.
func NewBadDayStateRepository(client *supabase.Client) BadDayStateRepository {
	return &badDayStateRepository{client: client}
}

func (r *badDayStateRepository) Get(ctx context.Context, userID string) (*models.BadDayState, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "bad_day_states", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bad-day state: %w", err)
	}

	var rows []models.BadDayState
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		// Absent row means never activated; callers get the inactive zero
		// state rather than an error.
		return &models.BadDayState{UserID: userID}, nil
	}
	return &rows[0], nil
}

func (r *badDayStateRepository) Save(ctx context.Context, state *models.BadDayState) (*models.BadDayState, error) {
	data := map[string]interface{}{
		"user_id":    state.UserID,
		"active":     state.Active,
		"triggers":   state.Triggers,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if state.ActivatedDate != "" {
		data["activated_date"] = state.ActivatedDate
	} else {
		data["activated_date"] = nil
	}

	body, err := r.client.Upsert(ctx, "bad_day_states", data, "user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to save bad-day state: %w", err)
	}

	var rows []models.BadDayState
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no state returned")
	}
	return &rows[0], nil
}
