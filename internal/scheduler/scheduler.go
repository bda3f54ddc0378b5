// Package scheduler runs periodic maintenance: expiring old task records
// and sweeping stale postings out of storage.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/internal/storage"
	"jobscout/internal/tasks"
)

// Scheduler owns the cron runner and its registered maintenance jobs
type Scheduler struct {
	config       *config.Config
	cron         *cron.Cron
	taskStore    tasks.TaskStore
	postingStore storage.PostingStore
	logger       types.Logger
}

// New creates a scheduler; either store may be nil, which skips its job
func New(cfg *config.Config, taskStore tasks.TaskStore, postingStore storage.PostingStore) *Scheduler {
	return &Scheduler{
		config:       cfg,
		cron:         cron.New(),
		taskStore:    taskStore,
		postingStore: postingStore,
		logger:       logging.GetGlobalLogger(),
	}
}

// Start registers the maintenance jobs and begins the cron loop
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.Enabled {
		s.logger.Info("Scheduler disabled by configuration", map[string]interface{}{})
		return nil
	}

	if s.taskStore != nil {
		spec := s.config.Scheduler.TaskCleanupSpec
		if _, err := s.cron.AddFunc(spec, s.cleanupTasks); err != nil {
			return fmt.Errorf("failed to register task cleanup job: %w", err)
		}
		s.logger.Info("Registered task cleanup job", map[string]interface{}{
			"spec": spec,
		})
	}

	if s.postingStore != nil {
		spec := s.config.Scheduler.PostingSweepSpec
		if _, err := s.cron.AddFunc(spec, s.sweepPostings); err != nil {
			return fmt.Errorf("failed to register posting sweep job: %w", err)
		}
		s.logger.Info("Registered posting sweep job", map[string]interface{}{
			"spec": spec,
		})
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron loop, waiting for any running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped", map[string]interface{}{})
}

func (s *Scheduler) cleanupTasks() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	maxAge := s.config.Tasks.MaxTaskAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	if err := s.taskStore.Cleanup(ctx, maxAge); err != nil {
		s.logger.Error("Task cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.logger.Debug("Task cleanup completed", map[string]interface{}{
		"max_age": maxAge.String(),
	})
}

func (s *Scheduler) sweepPostings() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Postings older than thirty days have usually expired at the source
	const retention = 30 * 24 * time.Hour

	removed, err := s.postingStore.Sweep(ctx, retention)
	if err != nil {
		s.logger.Error("Posting sweep failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if removed > 0 {
		s.logger.Info("Swept expired postings", map[string]interface{}{
			"removed": removed,
		})
	}
}
