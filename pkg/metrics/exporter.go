// Package metrics exposes pkg/monitor's latency/throughput numbers as
// Prometheus gauges, the way the teacher's
// pkg/metrics/lux_metrics.go exposes engine counters for scraping. This is
// pure exposition: every number still comes from monitor.Monitor's own
// percentile/rate math (spec.md §4.D); nothing here changes monitor
// semantics.
package metrics

import (
	"net/http"
	"time"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxfeed/hftcore/pkg/monitor"
)

// Exporter periodically samples a monitor.Monitor and republishes its stats
// as Prometheus series.
type Exporter struct {
	namespace string
	mon       *monitor.Monitor
	registry  *prometheus.Registry
	logger    log.Logger

	latencyMin   prometheus.Gauge
	latencyMax   prometheus.Gauge
	latencyMean  prometheus.Gauge
	latencyP99   prometheus.Gauge
	sampleCount  prometheus.Gauge
	messagesRate prometheus.Gauge
	bytesRate    prometheus.Gauge
	totalMsgs    prometheus.Gauge
	totalBytes   prometheus.Gauge
}

// NewExporter builds an Exporter over mon under namespace, registering all
// series on a fresh Prometheus registry.
func NewExporter(namespace string, mon *monitor.Monitor) *Exporter {
	logger := log.Root().New("module", "metrics")
	registry := prometheus.NewRegistry()

	e := &Exporter{
		namespace: namespace,
		mon:       mon,
		registry:  registry,
		logger:    logger,

		latencyMin: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "latency_min_nanoseconds", Help: "Minimum recorded operation latency",
		}),
		latencyMax: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "latency_max_nanoseconds", Help: "Maximum recorded operation latency",
		}),
		latencyMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "latency_mean_nanoseconds", Help: "Mean recorded operation latency",
		}),
		latencyP99: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "latency_p99_nanoseconds", Help: "p99 recorded operation latency",
		}),
		sampleCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "latency_sample_count", Help: "Number of samples in the reservoir",
		}),
		messagesRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "throughput_messages_per_second", Help: "Messages per second since monitoring started",
		}),
		bytesRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "throughput_bytes_per_second", Help: "Bytes per second since monitoring started",
		}),
		totalMsgs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "messages_total", Help: "Total operations recorded",
		}),
		totalBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "bytes_total", Help: "Total bytes recorded",
		}),
	}

	registry.MustRegister(
		e.latencyMin, e.latencyMax, e.latencyMean, e.latencyP99, e.sampleCount,
		e.messagesRate, e.bytesRate, e.totalMsgs, e.totalBytes,
	)
	return e
}

// Sample pulls the current stats from the monitor and updates the gauges.
// totalMsgs/totalBytes are Gauges rather than Counters because the monitor
// only exposes cumulative snapshots, not deltas, to set against them.
func (e *Exporter) Sample() {
	lat := e.mon.LatencyStats()
	e.latencyMin.Set(float64(lat.Min))
	e.latencyMax.Set(float64(lat.Max))
	e.latencyMean.Set(float64(lat.Mean))
	e.latencyP99.Set(float64(lat.P99))
	e.sampleCount.Set(float64(lat.Count))

	tp := e.mon.ThroughputStats()
	e.messagesRate.Set(tp.MessagesPerSec)
	e.bytesRate.Set(tp.BytesPerSec)
	e.totalMsgs.Set(float64(tp.TotalMessages))
	e.totalBytes.Set(float64(tp.TotalBytes))
}

// Handler returns the http.Handler serving the Prometheus exposition
// format for this exporter's registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeBackground starts a goroutine that calls Sample on interval until
// stop is closed.
func (e *Exporter) ServeBackground(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.Sample()
			}
		}
	}()
	e.logger.Info("metrics exporter sampling started", "interval", interval)
}
