// internal/telemetry/metric/metrics.go

// Package metric exposes talond's Prometheus metrics.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "talond"

// Metrics holds the daemon's instrument set, registered on a private
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	PollsTotal         prometheus.Counter
	PollFailuresTotal  prometheus.Counter
	TornSnapshotsTotal prometheus.Counter
	DecodeDuration     prometheus.Histogram

	TelescopeState     prometheus.Gauge
	HeartbeatRemaining prometheus.Gauge
	TalonReachable     prometheus.Gauge
}

// New builds and registers the instrument set.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PollsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Shared memory poll attempts.",
		}),
		PollFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_failures_total",
			Help:      "Polls that failed to attach or decode.",
		}),
		TornSnapshotsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "torn_snapshots_total",
			Help:      "Snapshots discarded because the writer updated mid-read.",
		}),
		DecodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Time spent reading and decoding the segment.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 8),
		}),
		TelescopeState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "telescope_state",
			Help:      "Raw talon TelState code from the last good poll.",
		}),
		HeartbeatRemaining: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heartbeat_remaining",
			Help:      "Dome heartbeat countdown in seconds.",
		}),
		TalonReachable: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "talon_reachable",
			Help:      "1 while the shared memory segment decodes cleanly.",
		}),
	}
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
