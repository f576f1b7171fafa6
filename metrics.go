package qsweep

import (
	"sort"
	"sync"
	"time"
)

type Metrics struct {
	mu             sync.RWMutex
	WorkerCount    int
	TransformCount int64
	PairsProcessed uint64
	LastTarget     int
	LastTransform  time.Time
	TotalSweepTime time.Duration

	AverageSweepLatency time.Duration
	P95SweepLatency     time.Duration
	P99SweepLatency     time.Duration

	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindow: make([]time.Duration, 0, 1000), // Store last 1000 sweeps
		windowSize:    1000,
	}
}

func (m *Metrics) recordTransform(target int, pairs uint64, startTime time.Time) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TransformCount++
	m.PairsProcessed += pairs
	m.LastTarget = target
	m.LastTransform = startTime
	m.TotalSweepTime += duration

	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageSweepLatency = m.TotalSweepTime / time.Duration(m.TransformCount)

	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}

	sorted := make([]time.Duration, len(m.latencyWindow))
	copy(sorted, m.latencyWindow)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

	m.P95SweepLatency = sorted[p95Index]
	m.P99SweepLatency = sorted[p99Index]
}

func (m *Metrics) setWorkers(n int) {
	m.mu.Lock()
	m.WorkerCount = n
	m.mu.Unlock()
}

// Snapshot returns the transform count and pairs processed so far.
func (m *Metrics) Snapshot() (transforms int64, pairs uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.TransformCount, m.PairsProcessed
}

func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count":    m.WorkerCount,
		"transforms":      m.TransformCount,
		"pairs_processed": m.PairsProcessed,
		"last_target":     m.LastTarget,
		"total_sweep_us":  m.TotalSweepTime.Microseconds(),
		"avg_latency_us":  m.AverageSweepLatency.Microseconds(),
		"p95_latency_us":  m.P95SweepLatency.Microseconds(),
		"p99_latency_us":  m.P99SweepLatency.Microseconds(),
	}
}
