// Package scheduler runs the periodic retention sweep.
package scheduler

import (
	"context"
	"time"

	maintenance "github.com/chroma-excellence/chromaqa/internal/application/maintenance/usecases"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

// CleanupScheduler runs the purge sweep on a fixed interval.
type CleanupScheduler struct {
	purge    maintenance.PurgeExpiredExecutor
	logger   logger.Interface
	stopChan chan struct{}
	interval time.Duration
}

func NewCleanupScheduler(
	purge maintenance.PurgeExpiredExecutor,
	interval time.Duration,
	logger logger.Interface,
) *CleanupScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &CleanupScheduler{
		purge:    purge,
		logger:   logger,
		stopChan: make(chan struct{}),
		interval: interval,
	}
}

// Start starts the scheduler
func (s *CleanupScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting cleanup scheduler", "interval", s.interval)

	// Run immediately on start
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("cleanup scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("cleanup scheduler stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

// Stop stops the scheduler
func (s *CleanupScheduler) Stop() {
	close(s.stopChan)
}

func (s *CleanupScheduler) runSweep(ctx context.Context) {
	s.logger.Debugw("cleanup sweep started")

	result, err := s.purge.Execute(ctx)
	if err != nil {
		s.logger.Errorw("cleanup sweep failed", "error", err)
		return
	}

	s.logger.Debugw("cleanup sweep finished",
		"scanned", result.Scanned, "purged", result.Purged, "failed", result.Failed)
}
