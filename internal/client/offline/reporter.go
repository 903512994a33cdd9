package offline

import (
	"context"
	"log/slog"
	"sync"
)

// Reporter is the client-side entry point for position reporting. While
// online it sends samples straight through; while offline it queues them.
// Connectivity notifications and the retry trigger drive the queue drain.
type Reporter struct {
	sender Sender
	queue  *Queue
	logger *slog.Logger

	mu     sync.Mutex
	online bool
}

func NewReporter(sender Sender, logger *slog.Logger) *Reporter {
	return &Reporter{
		sender: sender,
		queue:  NewQueue(),
		logger: logger.With("component", "location_reporter"),
		online: true,
	}
}

// Report submits a sample. A send failure flips the reporter offline and
// queues the sample instead of losing it.
func (r *Reporter) Report(ctx context.Context, sample Sample) error {
	r.mu.Lock()
	online := r.online
	r.mu.Unlock()

	if !online {
		r.queue.Push(sample)
		return nil
	}

	if err := r.sender.Send(ctx, sample); err != nil {
		r.logger.WarnContext(ctx, "Send failed, queueing sample", "error", err)
		r.setOnline(false)
		r.queue.Push(sample)
		return nil
	}
	return nil
}

// NotifyConnectivity tells the reporter the network state changed. Coming
// back online drains the queue.
func (r *Reporter) NotifyConnectivity(ctx context.Context, online bool) {
	r.setOnline(online)
	if online {
		r.Retry(ctx)
	}
}

// Retry attempts to drain the queue. A failure flips the reporter offline
// again and keeps the newest sample queued.
func (r *Reporter) Retry(ctx context.Context) {
	if err := r.queue.Flush(ctx, r.sender); err != nil {
		r.logger.WarnContext(ctx, "Queue flush failed", "error", err)
		r.setOnline(false)
		return
	}
	r.setOnline(true)
}

// Pending returns the number of queued samples.
func (r *Reporter) Pending() int {
	return r.queue.Len()
}

func (r *Reporter) setOnline(online bool) {
	r.mu.Lock()
	r.online = online
	r.mu.Unlock()
}
