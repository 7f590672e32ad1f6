package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"TickerDesk/internal/recorder"
)

// Sweeper evicts expired cache entries and reports how many were removed.
type Sweeper interface {
	Sweep() int
}

// Scheduler manages the background maintenance tasks.
type Scheduler struct {
	Cron          *cron.Cron
	Cache         Sweeper
	Recorder      recorder.Recorder
	RetentionDays int

	now    func() time.Time
	logger *slog.Logger
}

// NewScheduler creates a new Scheduler. cache may be nil when caching is disabled.
func NewScheduler(cache Sweeper, rec recorder.Recorder, retentionDays int, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Cache:         cache,
		Recorder:      rec,
		RetentionDays: retentionDays,
		now:           time.Now,
		logger:        logger,
	}
}

// RegisterAll registers the cache sweep and the diagnostics retention tasks.
func (s *Scheduler) RegisterAll(sweepCron, retentionCron string) error {
	if s.Cache != nil {
		if _, err := s.Cron.AddFunc(sweepCron, s.sweepTask); err != nil {
			return fmt.Errorf("register sweep task: %w", err)
		}
	}
	if _, err := s.Cron.AddFunc(retentionCron, func() { s.RunRetentionNow() }); err != nil {
		return fmt.Errorf("register retention task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.Cron.Entries()))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunRetentionNow deletes diagnostics older than the retention period.
func (s *Scheduler) RunRetentionNow() (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.RetentionDays)
	n, err := s.Recorder.Prune(cutoff)
	if err != nil {
		s.logger.Error("retention prune", "error", err)
		return 0, err
	}
	s.logger.Info("retention prune", "deleted", n, "cutoff", cutoff.Format(time.DateOnly))
	return n, nil
}

func (s *Scheduler) sweepTask() {
	if n := s.Cache.Sweep(); n > 0 {
		s.logger.Debug("cache sweep", "evicted", n)
	}
}
