// Package prometheus adapts emitter metrics to a Prometheus registry.
package prometheus

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/randalmurphal/emitkit/pkg/emitter/observability"
)

// Collector implements observability.MetricsRecorder using Prometheus
type Collector struct {
	resolutions      *prometheus.CounterVec
	listeners        *prometheus.HistogramVec
	deliveryFailures *prometheus.CounterVec
	unhandled        *prometheus.CounterVec
	replays          *prometheus.CounterVec
}

var _ observability.MetricsRecorder = (*Collector)(nil)

// NewCollector creates a collector registered on reg.
// A nil reg registers on prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Collector{
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emitkit_channel_resolutions_total",
				Help: "Total number of channel resolutions",
			},
			[]string{"channel", "role"},
		),
		listeners: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "emitkit_channel_listeners",
				Help:    "Callbacks registered at resolution time",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"channel"},
		),
		deliveryFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emitkit_channel_delivery_failures_total",
				Help: "Total number of callback or middleware failures",
			},
			[]string{"channel"},
		),
		unhandled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emitkit_unhandled_total",
				Help: "Total number of resolutions nobody listened to",
			},
			[]string{"kind"},
		),
		replays: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emitkit_channel_replays_total",
				Help: "Total number of sticky tuples replayed to late callbacks",
			},
			[]string{"channel"},
		),
	}
}

// RecordResolution counts a resolution and observes its listener count
func (c *Collector) RecordResolution(_ context.Context, channel, role string, listeners int) {
	c.resolutions.WithLabelValues(channel, role).Inc()
	c.listeners.WithLabelValues(channel).Observe(float64(listeners))
}

// RecordDeliveryFailure counts a failed delivery
func (c *Collector) RecordDeliveryFailure(_ context.Context, channel string) {
	c.deliveryFailures.WithLabelValues(channel).Inc()
}

// RecordUnhandled counts an unhandled resolution
func (c *Collector) RecordUnhandled(_ context.Context, kind string) {
	c.unhandled.WithLabelValues(kind).Inc()
}

// RecordReplay counts replayed sticky tuples
func (c *Collector) RecordReplay(_ context.Context, channel string, count int) {
	c.replays.WithLabelValues(channel).Add(float64(count))
}
