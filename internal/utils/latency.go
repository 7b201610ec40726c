package utils

import (
	"sort"
	"sync"
	"time"
)

// LatencyTracker stores recent request duration samples and computes
// percentiles for the watch dashboard.
type LatencyTracker struct {
	mu      sync.RWMutex
	samples []time.Duration
	maxSize int
}

// LatencySummary is a point-in-time percentile view of recorded samples.
type LatencySummary struct {
	Count int
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

// NewLatencyTracker creates a tracker storing up to maxSize samples.
func NewLatencyTracker(maxSize int) *LatencyTracker {
	if maxSize <= 0 {
		maxSize = 512
	}
	return &LatencyTracker{maxSize: maxSize}
}

// Observe records a new duration.
func (l *LatencyTracker) Observe(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.samples = append(l.samples, d)
	if len(l.samples) > l.maxSize {
		// Drop oldest sample to bound memory.
		copy(l.samples[0:], l.samples[1:])
		l.samples = l.samples[:l.maxSize]
	}
}

// Summary returns percentiles over the retained window.
func (l *LatencyTracker) Summary() LatencySummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.samples) == 0 {
		return LatencySummary{}
	}

	sorted := append([]time.Duration(nil), l.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencySummary{
		Count: len(sorted),
		P50:   sorted[percentileIndex(50, len(sorted))],
		P95:   sorted[percentileIndex(95, len(sorted))],
		Max:   sorted[len(sorted)-1],
	}
}

// Count returns number of samples recorded.
func (l *LatencyTracker) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.samples)
}

func percentileIndex(p float64, n int) int {
	index := int((p / 100.0) * float64(n-1))
	if index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
