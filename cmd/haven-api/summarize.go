package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenlabs/haven/backend/internal/config"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/repository"
	"github.com/havenlabs/haven/backend/internal/service"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Run the weekly summary batch",
	Long: `Generate weekly summaries for all active users.

Intended to run from a scheduler once a week. The batch runs to
completion even when individual users fail; partial failure is reported
in the counts, not the exit code.`,
	RunE: runSummarize,
}

var batchTimeout time.Duration

func init() {
	summarizeCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "Overall batch deadline")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := initLogger(cfg)

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	checkInRepo := repository.NewCheckInRepository(supabaseClient)
	planRepo := repository.NewPlanRepository(supabaseClient)
	summaryRepo := repository.NewSummaryRepository(supabaseClient)
	summaryService := service.NewSummaryService(summaryRepo, checkInRepo, planRepo, cfg.Batch.Concurrency, nil)

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	start := time.Now()
	result, err := summaryService.RunWeeklyBatch(ctx)
	if err != nil {
		return fmt.Errorf("weekly batch failed: %w", err)
	}

	log.Info("weekly batch done",
		logger.Int("successful", result.Successful),
		logger.Int("failed", result.Failed),
		logger.Int("skipped", result.Skipped),
		logger.Duration("elapsed", time.Since(start)),
	)
	return nil
}
