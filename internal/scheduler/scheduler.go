package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/batchcost/internal/config"
	"github.com/mamadbah2/batchcost/internal/service/batches"
)

// Scheduler periodically recalculates every batch worked inside the trailing
// window, so figures stay current even when nobody triggers a recalculation
// by hand after editing a list.
type Scheduler struct {
	cron   *cron.Cron
	svc    batches.API
	cfg    config.RecalcConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RecalcConfig, svc batches.API, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the recalculation job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.recalculateWindow)
	if err != nil {
		s.logger.Error("failed to schedule recalculation job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) recalculateWindow() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -s.cfg.WindowDays)

	s.logger.Info("recalculating recent batches",
		zap.Time("window_start", start),
		zap.Time("window_end", end))

	summaries, err := s.svc.ListBatches(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to list batches for recalculation", zap.Error(err))
		return
	}

	var failures int
	for _, summary := range summaries {
		if _, err := s.svc.Recalculate(ctx, summary.ItemID, s.cfg.WriteLabour); err != nil {
			failures++
			s.logger.Error("scheduled recalculation failed",
				zap.String("item_id", summary.ItemID),
				zap.String("batch_no", summary.BatchNo),
				zap.Error(err))
		}
	}

	s.logger.Info("scheduled recalculation finished",
		zap.Int("batches", len(summaries)),
		zap.Int("failures", failures))
}
