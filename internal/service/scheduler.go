package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// PromotionScheduler runs the promotion job on a cron schedule inside the API process.
type PromotionScheduler struct {
	cron        *cron.Cron
	promotion   PromotionService
	tickTimeout time.Duration
	logger      zerolog.Logger
}

// NewPromotionScheduler registers the job. Ticks that overlap a still running job are skipped.
func NewPromotionScheduler(schedule string, promotion PromotionService, tickTimeout time.Duration, logger zerolog.Logger) (*PromotionScheduler, error) {
	if tickTimeout <= 0 {
		tickTimeout = 30 * time.Second
	}
	scheduler := &PromotionScheduler{
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		promotion:   promotion,
		tickTimeout: tickTimeout,
		logger:      logger.With().Str("component", "promotion_scheduler").Logger(),
	}

	if _, err := scheduler.cron.AddFunc(schedule, scheduler.tick); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// Start begins running the schedule in the background.
func (s *PromotionScheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("promotion scheduler started")
}

// Stop waits for a running tick to finish or for ctx to expire.
func (s *PromotionScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("promotion scheduler stop timed out")
	}
}

func (s *PromotionScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.tickTimeout)
	defer cancel()

	report, err := s.promotion.Run(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("promotion run failed")
		return
	}
	if report.Empty() {
		return
	}
	s.logger.Info().
		Int("processed", len(report.Processed)).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("promotion run finished")
}
