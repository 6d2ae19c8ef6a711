package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

type planRepository struct {
	client *supabase.Client
}

// NewPlanRepository creates a new daily plan repository.
func NewPlanRepository(client *supabase.Client) PlanRepository {
	return &planRepository{client: client}
}

func (r *planRepository) Create(ctx context.Context, plan *models.DailyPlan) (*models.DailyPlan, error) {
	data := map[string]interface{}{
		"id":          plan.ID,
		"user_id":     plan.UserID,
		"date":        plan.Date,
		"check_in_id": plan.CheckInID,
		"message":     plan.Message,
		"actions":     plan.Actions,
	}

	// One plan per user-day; regenerating the same day replaces it.
	body, err := r.client.Upsert(ctx, "daily_plans", data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return unmarshalPlan(body)
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*models.DailyPlan, error) {
	query := map[string]string{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query(ctx, "daily_plans", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	var rows []models.DailyPlan
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *planRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*models.DailyPlan, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date),
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "daily_plans", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	var rows []models.DailyPlan
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *planRepository) GetByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.DailyPlan, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("gte.%s", startDate),
		"and":     fmt.Sprintf("(date.lte.%s)", endDate),
		"order":   "date.asc",
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "daily_plans", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}

	var rows []models.DailyPlan
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return rows, nil
}

func (r *planRepository) UpdateActions(ctx context.Context, id string, actions []models.PlannedAction) (*models.DailyPlan, error) {
	data := map[string]interface{}{
		"actions":    actions,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	body, err := r.client.Update(ctx, "daily_plans", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update plan actions: %w", err)
	}
	return unmarshalPlan(body)
}

func unmarshalPlan(body []byte) (*models.DailyPlan, error) {
	var rows []models.DailyPlan
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no plan returned")
	}
	return &rows[0], nil
}
