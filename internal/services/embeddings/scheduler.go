package embeddings

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/interfaces"
)

// Scheduler runs the embedding backfill on a cron schedule so rows
// missed by post-scrape backfill eventually get vectors.
type Scheduler struct {
	backfill interfaces.BackfillService
	cron     *cron.Cron
	limit    int
	logger   arbor.ILogger
}

// NewScheduler creates a new backfill scheduler
func NewScheduler(backfill interfaces.BackfillService, limit int, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		backfill: backfill,
		cron:     cron.New(cron.WithSeconds()),
		limit:    limit,
		logger:   logger,
	}
}

// Start begins the scheduled backfill
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		// Default: every 6 hours
		schedule = "0 0 */6 * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runBackfill()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Int("limit", s.limit).
		Msg("Embedding backfill scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Embedding backfill scheduler stopped")
}

// RunNow triggers an immediate backfill run
func (s *Scheduler) RunNow() {
	s.logger.Info().Msg("Triggering immediate backfill run")
	go s.runBackfill()
}

func (s *Scheduler) runBackfill() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	s.logger.Info().Msg("Starting scheduled embedding backfill")

	updated, err := s.backfill.Run(ctx, s.limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled embedding backfill failed")
		return
	}

	s.logger.Info().
		Int("updated", updated).
		Msg("Scheduled embedding backfill completed")
}
