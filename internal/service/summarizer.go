package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/havenlabs/haven/backend/internal/analytics"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/models"
	"github.com/havenlabs/haven/backend/internal/repository"
)

const (
	// SummaryWindowDays is the length of a summary window. The window ends
	// yesterday so partially-lived days never distort the averages.
	SummaryWindowDays = 7
	// DefaultBatchConcurrency bounds the weekly batch fan-out.
	DefaultBatchConcurrency = 8
	// DefaultSummaryWeeks is how many past summaries a listing returns.
	DefaultSummaryWeeks = 12
	// batchLookbackDays decides who counts as an active user for the batch.
	batchLookbackDays = 30
)

type summaryService struct {
	summaryRepo repository.SummaryRepository
	checkInRepo repository.CheckInRepository
	planRepo    repository.PlanRepository
	concurrency int
	now         func() time.Time
}

func NewSummaryService(
	summaryRepo repository.SummaryRepository,
	checkInRepo repository.CheckInRepository,
	planRepo repository.PlanRepository,
	concurrency int,
	now func() time.Time,
) SummaryService {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	if now == nil {
		now = time.Now
	}
	return &summaryService{
		summaryRepo: summaryRepo,
		checkInRepo: checkInRepo,
		planRepo:    planRepo,
		concurrency: concurrency,
		now:         now,
	}
}

// SummarizeUser builds and persists one user's summary for the seven-day
// window ending yesterday. Users with no check-ins in the window are
// skipped, reported as (nil, nil).
func (s *summaryService) SummarizeUser(ctx context.Context, userID string, now time.Time) (*models.WeeklySummary, error) {
	weekEnd := now.AddDate(0, 0, -1)
	weekStart := now.AddDate(0, 0, -SummaryWindowDays)
	startStr := weekStart.Format(models.DateLayout)
	endStr := weekEnd.Format(models.DateLayout)

	checkins, err := s.checkInRepo.GetByUserAndDateRange(ctx, userID, startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}
	if len(checkins) == 0 {
		return nil, nil
	}

	metrics := make(map[string]models.MetricTrend, len(models.MetricNames))
	for _, name := range models.MetricNames {
		values := make([]int, 0, len(checkins))
		for _, c := range checkins {
			values = append(values, c.Metric(name))
		}
		metrics[name] = analytics.SummarizeMetric(values, models.InvertedMetrics[name])
	}

	plans, err := s.planRepo.GetByUserAndDateRange(ctx, userID, startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}
	var completed, total int
	for _, p := range plans {
		c, t := p.CompletionCounts()
		completed += c
		total += t
	}
	rate := analytics.CompletionRate(completed, total)

	streakHistory, err := s.checkInRepo.GetByUserAndDateRange(ctx, userID,
		now.AddDate(0, 0, -StreakHistoryDays).Format(models.DateLayout), endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak history: %w", err)
	}
	dates := make([]string, 0, len(streakHistory))
	for _, c := range streakHistory {
		dates = append(dates, c.Date)
	}

	summary := &models.WeeklySummary{
		ID:             uuid.NewString(),
		UserID:         userID,
		WeekStart:      startStr,
		WeekEnd:        endStr,
		Metrics:        metrics,
		CompletionRate: rate,
		CurrentStreak:  analytics.CurrentStreak(dates, now),
		LongestStreak:  analytics.LongestStreak(dates),
		Insights:       analytics.BuildInsights(metrics, rate),
		TopActions:     analytics.TopCompletedActions(plans),
		GeneratedAt:    s.now(),
	}

	created, err := s.summaryRepo.Create(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}
	return created, nil
}

// RunWeeklyBatch summarizes every active user concurrently. One user's
// failure never stops the others; the batch always runs to completion and
// reports how it went.
func (s *summaryService) RunWeeklyBatch(ctx context.Context) (*models.BatchResult, error) {
	now := s.now()
	since := now.AddDate(0, 0, -batchLookbackDays)
	userIDs, err := s.checkInRepo.ActiveUserIDs(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	var successful, failed, skipped atomic.Int64
	p := pool.New().WithMaxGoroutines(s.concurrency)
	for _, userID := range userIDs {
		p.Go(func() {
			summary, err := s.SummarizeUser(ctx, userID, now)
			switch {
			case err != nil:
				failed.Add(1)
				logger.Ctx(ctx).Error("weekly summary failed",
					logger.String("user_id", userID),
					logger.Err(err))
			case summary == nil:
				skipped.Add(1)
			default:
				successful.Add(1)
			}
		})
	}
	p.Wait()

	result := &models.BatchResult{
		Successful: int(successful.Load()),
		Failed:     int(failed.Load()),
		Skipped:    int(skipped.Load()),
	}
	logger.Ctx(ctx).Info("weekly summary batch finished",
		logger.Int("users", len(userIDs)),
		logger.Int("successful", result.Successful),
		logger.Int("failed", result.Failed),
		logger.Int("skipped", result.Skipped))
	return result, nil
}

func (s *summaryService) ListSummaries(ctx context.Context, userID string, weeks int) ([]models.WeeklySummary, error) {
	if weeks <= 0 {
		weeks = DefaultSummaryWeeks
	}
	summaries, err := s.summaryRepo.GetByUserID(ctx, userID, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}
