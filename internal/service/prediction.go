package service

import (
	"context"
	"fmt"
	"time"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/repository"
)

const (
	// PredictionHistoryDays caps how far back prediction reads.
	PredictionHistoryDays = 90
	// StreakHistoryDays caps how far back streak computation reads.
	StreakHistoryDays = 365
)

type insightService struct {
	checkInRepo repository.CheckInRepository
	now         func() time.Time
}

func NewInsightService(checkInRepo repository.CheckInRepository, now func() time.Time) InsightService {
	if now == nil {
		now = time.Now
	}
	return &insightService{checkInRepo: checkInRepo, now: now}
}

// GetPrediction forecasts tomorrow's mood from up to ninety days of history.
// With no history the result carries Available=false rather than an error.
func (s *insightService) GetPrediction(ctx context.Context, userID string) (*analytics.Prediction, error) {
	checkins, err := s.history(ctx, userID, PredictionHistoryDays)
	if err != nil {
		return nil, err
	}
	pred := analytics.PredictMood(checkins, s.now())
	return &pred, nil
}

// GetPatterns returns per-weekday statistics and detected trigger patterns
// over the last thirty days.
func (s *insightService) GetPatterns(ctx context.Context, userID string) (*PatternsResponse, error) {
	checkins, err := s.history(ctx, userID, PatternWindowDays)
	if err != nil {
		return nil, err
	}
	return &PatternsResponse{
		Weekdays: analytics.AnalyzeWeekdays(checkins),
		Patterns: analytics.DetectTriggerPatterns(checkins),
		Days:     PatternWindowDays,
	}, nil
}

func (s *insightService) GetStreaks(ctx context.Context, userID string) (*StreaksResponse, error) {
	checkins, err := s.history(ctx, userID, StreakHistoryDays)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(checkins))
	for _, c := range checkins {
		dates = append(dates, c.Date)
	}
	return &StreaksResponse{
		Current: analytics.CurrentStreak(dates, s.now()),
		Longest: analytics.LongestStreak(dates),
	}, nil
}

func (s *insightService) history(ctx context.Context, userID string, days int) ([]models.CheckIn, error) {
	now := s.now()
	start := now.AddDate(0, 0, -days).Format(models.DateLayout)
	end := now.Format(models.DateLayout)
	checkins, err := s.checkInRepo.GetByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}
	return checkins, nil
}
