package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/realtime"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	presenceSweepJob *PresenceSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(registry *realtime.Registry, sessionMaxIdle time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		presenceSweepJob: NewPresenceSweepJob(registry, sessionMaxIdle, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.presenceSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start presence sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.presenceSweepJob.Stop()
}
