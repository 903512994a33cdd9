// Package offline buffers driver location samples while the network is
// unreachable. Only the newest sample matters to the server, so reconnecting
// sends one sample and drops the rest.
package offline

import (
	"context"
	"sync"
	"time"
)

// Sample is one driver position reading.
type Sample struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// Sender delivers a sample to the server. The HTTP transport implements it;
// tests swap in a fake.
type Sender interface {
	Send(ctx context.Context, sample Sample) error
}

// Queue accumulates samples while offline. It is unbounded: positions are
// tiny and outages are short lived.
type Queue struct {
	mu      sync.Mutex
	pending []Sample
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a sample to the pending list.
func (q *Queue) Push(sample Sample) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, sample)
}

// Len returns the number of pending samples.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush sends only the newest pending sample and clears the list. The
// intermediate samples are discarded: the server keeps one row per driver,
// so replaying history would only overwrite itself. A send failure re-queues
// the sample it tried to deliver.
func (q *Queue) Flush(ctx context.Context, sender Sender) error {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return nil
	}
	newest := q.pending[len(q.pending)-1]
	q.pending = nil
	q.mu.Unlock()

	if err := sender.Send(ctx, newest); err != nil {
		q.Push(newest)
		return err
	}
	return nil
}
