package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/realtime"

	"github.com/robfig/cron/v3"
)

// defaultMaxIdle is how long a session may go without a frame before the
// sweep considers its websocket gone.
const defaultMaxIdle = 90 * time.Second

// PresenceSweepJob periodically drops realtime sessions whose connection
// died without a close frame. Without it a crashed client would hold its
// registry slot forever.
type PresenceSweepJob struct {
	registry *realtime.Registry
	maxIdle  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPresenceSweepJob creates a sweep over the session registry. maxIdle of
// zero or less falls back to the default.
func NewPresenceSweepJob(registry *realtime.Registry, maxIdle time.Duration, logger *slog.Logger) *PresenceSweepJob {
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	return &PresenceSweepJob{
		registry: registry,
		maxIdle:  maxIdle,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "presence_sweep_job"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *PresenceSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		dropped := j.registry.SweepStale(j.maxIdle)
		if dropped > 0 {
			j.logger.InfoContext(ctx, "Swept stale realtime sessions",
				"dropped", dropped, "remaining", j.registry.Count())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *PresenceSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Presence sweep job stopped")
}
