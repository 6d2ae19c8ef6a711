package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

type summaryRepository struct {
	client *supabase.Client
}

// NewSummaryRepository creates a new weekly summary repository.
func NewSummaryRepository(client *supabase.Client) SummaryRepository {
	return &summaryRepository{client: client}
}

func (r *summaryRepository) Create(ctx context.Context, summary *models.WeeklySummary) (*models.WeeklySummary, error) {
	data := map[string]interface{}{
		"id":              summary.ID,
		"user_id":         summary.UserID,
		"week_start":      summary.WeekStart,
		"week_end":        summary.WeekEnd,
		"metrics":         summary.Metrics,
		"completion_rate": summary.CompletionRate,
		"current_streak":  summary.CurrentStreak,
		"longest_streak":  summary.LongestStreak,
		"insights":        summary.Insights,
		"top_actions":     summary.TopActions,
	}

	// Summaries are immutable; ignore-duplicates keeps a rerun from
	// rewriting an existing week.
	body, err := r.client.Upsert(ctx, "weekly_summaries", data, "user_id,week_start")
	if err != nil {
		return nil, fmt.Errorf("failed to create weekly summary: %w", err)
	}

	var rows []models.WeeklySummary
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		// Conflict with an existing week; return the stored record.
		return r.GetByUserAndWeekStart(ctx, summary.UserID, summary.WeekStart)
	}
	return &rows[0], nil
}

func (r *summaryRepository) GetByUserAndWeekStart(ctx context.Context, userID, weekStart string) (*models.WeeklySummary, error) {
	query := map[string]string{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"week_start": fmt.Sprintf("eq.%s", weekStart),
		"select":     "*",
	}

	body, err := r.client.Query(ctx, "weekly_summaries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly summary: %w", err)
	}

	var rows []models.WeeklySummary
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *summaryRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.WeeklySummary, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"order":   "week_start.desc",
		"select":  "*",
	}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	body, err := r.client.Query(ctx, "weekly_summaries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly summaries: %w", err)
	}

	var rows []models.WeeklySummary
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return rows, nil
}
