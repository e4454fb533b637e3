package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for one flexbuf instance.
type Metrics struct {
	registry *prometheus.Registry

	LinesWritten  prometheus.Counter
	Appends       prometheus.Counter
	WriteRejects  *prometheus.CounterVec // reason: empty|oversize|stale
	LinesEvicted  prometheus.Counter
	ActiveLines   prometheus.Gauge
	BytesCaptured prometheus.Counter

	LinesArchived   prometheus.Counter
	ArchiveFlush    prometheus.Histogram
	ArchiveFailures prometheus.Counter
}

// New creates a Metrics with its own registry, including the standard Go
// runtime collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		LinesWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "flexbuf_lines_written_total",
			Help: "Total lines accepted by WriteLine",
		}),
		Appends: factory.NewCounter(prometheus.CounterOpts{
			Name: "flexbuf_appends_total",
			Help: "Total accepted appends to the newest line",
		}),
		WriteRejects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flexbuf_write_rejects_total",
			Help: "Writes and appends rejected by admission control",
		}, []string{"reason"}),
		LinesEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "flexbuf_lines_evicted_total",
			Help: "Total lines evicted by newer writes",
		}),
		ActiveLines: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flexbuf_active_lines",
			Help: "Lines currently active in the ring",
		}),
		BytesCaptured: factory.NewCounter(prometheus.CounterOpts{
			Name: "flexbuf_capture_bytes_total",
			Help: "Bytes accepted by the capture sink",
		}),
		LinesArchived: factory.NewCounter(prometheus.CounterOpts{
			Name: "flexbuf_archive_lines_total",
			Help: "Evicted lines persisted to the archive store",
		}),
		ArchiveFlush: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "flexbuf_archive_flush_seconds",
			Help:    "Latency of archive batch commits",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		ArchiveFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "flexbuf_archive_failures_total",
			Help: "Archive batch commits that failed",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
