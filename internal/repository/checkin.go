package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

type checkInRepository struct {
	client *supabase.Client
}

// NewCheckInRepository creates a new check-in repository.
func NewCheckInRepository(client *supabase.Client) CheckInRepository {
	return &checkInRepository{client: client}
}

func (r *checkInRepository) Create(ctx context.Context, checkin *models.CheckIn) (*models.CheckIn, error) {
	data := map[string]interface{}{
		"user_id": checkin.UserID,
		"date":    checkin.Date,
		"mood":    checkin.Mood,
		"stress":  checkin.Stress,
		"sleep":   checkin.Sleep,
		"energy":  checkin.Energy,
		"focus":   checkin.Focus,
		"anxiety": checkin.Anxiety,
	}
	if checkin.Journal != nil {
		data["journal"] = *checkin.Journal
	}
	if checkin.CrisisDetected {
		data["crisis_detected"] = true
	}

	body, err := r.client.Insert(ctx, "check_ins", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	var rows []models.CheckIn
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no check-in returned")
	}
	return &rows[0], nil
}

func (r *checkInRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*models.CheckIn, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date),
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "check_ins", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}

	var rows []models.CheckIn
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *checkInRepository) GetByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.CheckIn, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("gte.%s", startDate),
		"and":     fmt.Sprintf("(date.lte.%s)", endDate),
		"order":   "date.asc",
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "check_ins", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}

	var rows []models.CheckIn
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return rows, nil
}

func (r *checkInRepository) GetRecent(ctx context.Context, userID string, days int) ([]models.CheckIn, error) {
	start := time.Now().AddDate(0, 0, -days).Format(models.DateLayout)
	end := time.Now().Format(models.DateLayout)
	return r.GetByUserAndDateRange(ctx, userID, start, end)
}

func (r *checkInRepository) SetCrisisFlags(ctx context.Context, id string, detected, handled bool) error {
	data := map[string]interface{}{
		"crisis_detected": detected,
		"crisis_handled":  handled,
	}
	if _, err := r.client.Update(ctx, "check_ins", id, data); err != nil {
		return fmt.Errorf("failed to update crisis flags: %w", err)
	}
	return nil
}

func (r *checkInRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	query := map[string]string{
		"date":   fmt.Sprintf("gte.%s", since.Format(models.DateLayout)),
		"select": "user_id",
	}

	body, err := r.client.Query(ctx, "check_ins", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	var rows []struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			ids = append(ids, row.UserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
