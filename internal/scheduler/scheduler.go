package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/config"
	"github.com/nutritrack/nutritrack/internal/service/catalog"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	catalogSvc *catalog.Service
	cfg        config.ImportConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ImportConfig, catalogSvc *catalog.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:       c,
		catalogSvc: catalogSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	// Default schedule: every Sunday at midnight.
	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runRecipeImport)
	if err != nil {
		s.logger.Error("failed to schedule recipe import", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runRecipeImport() {
	s.logger.Info("running scheduled recipe import")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stored, err := s.catalogSvc.ImportRecipes(ctx)
	if err != nil {
		s.logger.Error("scheduled recipe import failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled recipe import completed", zap.Int("stored", stored))
}
