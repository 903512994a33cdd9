// Package metrics exposes Prometheus collectors for the realtime channel.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Realtime records realtime channel telemetry: live session count, events
// published per type, and deliveries dropped to slow sessions.
type Realtime struct {
	sessions  prometheus.Gauge
	published *prometheus.CounterVec
	dropped   *prometheus.CounterVec
}

// NewRealtime registers the realtime collectors on the provided registerer.
// If reg is nil, the default registerer is used. Already-registered
// collectors are reused so repeated wiring stays safe.
func NewRealtime(reg prometheus.Registerer) (*Realtime, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_sessions",
		Help: "Number of live realtime sessions",
	})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_published_total",
		Help: "Total number of realtime events published",
	}, []string{"event"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_deliveries_dropped_total",
		Help: "Total number of event deliveries dropped to slow or closed sessions",
	}, []string{"event"})

	if err := reg.Register(sessions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sessions = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(published); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			published = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dropped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dropped = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &Realtime{sessions: sessions, published: published, dropped: dropped}, nil
}

// EventPublished counts one published event of the named type.
func (r *Realtime) EventPublished(eventType string) {
	r.published.WithLabelValues(eventType).Inc()
}

// DeliveryDropped counts one dropped delivery of the named type.
func (r *Realtime) DeliveryDropped(eventType string) {
	r.dropped.WithLabelValues(eventType).Inc()
}

// SessionOpened increments the live session gauge.
func (r *Realtime) SessionOpened() {
	r.sessions.Inc()
}

// SessionClosed decrements the live session gauge.
func (r *Realtime) SessionClosed() {
	r.sessions.Dec()
}
