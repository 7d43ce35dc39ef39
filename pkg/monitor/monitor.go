// Package monitor records per-operation latency samples and throughput
// counters and extracts percentile/rate statistics from them. The raw
// reservoir math is the spec's own (§4.D); pkg/metrics layers a Prometheus
// exposition of the same numbers on top, the way the teacher's
// pkg/metrics/lux_metrics.go exposes engine counters.
package monitor

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// highWaterMark is the soft cap on reservoir size; once exceeded the oldest
// half is dropped.
const highWaterMark = 100_000

// LatencyStats is the snapshot returned by LatencyStats.
type LatencyStats struct {
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P99   time.Duration
	Count int
}

// ThroughputStats is the snapshot returned by ThroughputStats.
type ThroughputStats struct {
	MessagesPerSec float64
	BytesPerSec    float64
	TotalMessages  uint64
	TotalBytes     uint64
}

// Monitor accumulates latency samples and throughput counters for one
// logical operation stream.
type Monitor struct {
	mu         sync.Mutex
	samples    []time.Duration
	startedAt  time.Time
	started    atomic.Bool
	operations atomic.Uint64
	bytes      atomic.Uint64
}

// New constructs a Monitor. Throughput rates are measured from the first
// call to StartMonitoring.
func New() *Monitor {
	return &Monitor{}
}

// StartMonitoring resets the elapsed-time base for ThroughputStats.
// Idempotent: only the first call sets the base.
func (m *Monitor) StartMonitoring() {
	if m.started.CompareAndSwap(false, true) {
		m.mu.Lock()
		m.startedAt = time.Now()
		m.mu.Unlock()
	}
}

// RecordLatency appends d to the reservoir. If the reservoir exceeds the
// high-water mark, the oldest half is dropped.
func (m *Monitor) RecordLatency(d time.Duration) {
	m.mu.Lock()
	m.samples = append(m.samples, d)
	if len(m.samples) > highWaterMark {
		half := len(m.samples) / 2
		copy(m.samples, m.samples[half:])
		m.samples = m.samples[:len(m.samples)-half]
	}
	m.mu.Unlock()
}

// RecordOperation increments the operation and byte counters.
func (m *Monitor) RecordOperation(bytes uint64) {
	m.operations.Add(1)
	m.bytes.Add(bytes)
}

// LatencyStats snapshot-copies the reservoir, sorts it ascending, and
// returns min/max/mean/p99/count. All fields are zero when no samples have
// been recorded.
func (m *Monitor) LatencyStats() LatencyStats {
	m.mu.Lock()
	snap := make([]time.Duration, len(m.samples))
	copy(snap, m.samples)
	m.mu.Unlock()

	if len(snap) == 0 {
		return LatencyStats{}
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i] < snap[j] })

	var sum time.Duration
	for _, d := range snap {
		sum += d
	}
	n := len(snap)
	mean := time.Duration(int64(sum) / int64(n))
	p99Idx := int(0.99 * float64(n))
	if p99Idx >= n {
		p99Idx = n - 1
	}

	return LatencyStats{
		Min:   snap[0],
		Max:   snap[n-1],
		Mean:  mean,
		P99:   snap[p99Idx],
		Count: n,
	}
}

// ThroughputStats returns messages/sec and bytes/sec measured against
// elapsed time since StartMonitoring, plus running totals. Zero rates when
// elapsed is zero or StartMonitoring was never called.
func (m *Monitor) ThroughputStats() ThroughputStats {
	m.mu.Lock()
	start := m.startedAt
	m.mu.Unlock()

	totalMsgs := m.operations.Load()
	totalBytes := m.bytes.Load()

	if start.IsZero() {
		return ThroughputStats{TotalMessages: totalMsgs, TotalBytes: totalBytes}
	}
	elapsed := time.Since(start).Seconds()
	if elapsed <= 0 {
		return ThroughputStats{TotalMessages: totalMsgs, TotalBytes: totalBytes}
	}
	return ThroughputStats{
		MessagesPerSec: float64(totalMsgs) / elapsed,
		BytesPerSec:    float64(totalBytes) / elapsed,
		TotalMessages:  totalMsgs,
		TotalBytes:     totalBytes,
	}
}
