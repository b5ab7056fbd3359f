package tts

import (
	"sort"
	"sync"
	"time"
)

// SynthStats keeps a rolling window of synthesis call latencies so the API
// can report how the external TTS service is behaving.
type SynthStats struct {
	mu     sync.Mutex
	maxAge time.Duration
	at     []time.Time
	millis []int64
}

// LatencySnapshot is a point-in-time aggregate over the rolling window.
type LatencySnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// NewSynthStats creates a stats window. Non-positive maxAge defaults to an
// hour.
func NewSynthStats(maxAge time.Duration) *SynthStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &SynthStats{maxAge: maxAge}
}

// Record adds one synthesis call latency. Negative durations are clamped
// to zero.
func (s *SynthStats) Record(d time.Duration) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.at = append(s.at, now)
	s.millis = append(s.millis, ms)
}

// Snapshot aggregates the samples still inside the window.
func (s *SynthStats) Snapshot() LatencySnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)

	if len(s.millis) == 0 {
		return LatencySnapshot{}
	}

	sorted := make([]int64, len(s.millis))
	copy(sorted, s.millis)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, v := range sorted {
		sum += v
	}

	return LatencySnapshot{
		Count: len(sorted),
		MinMs: sorted[0],
		MaxMs: sorted[len(sorted)-1],
		AvgMs: float64(sum) / float64(len(sorted)),
		P50Ms: percentile(sorted, 50),
		P95Ms: percentile(sorted, 95),
		P99Ms: percentile(sorted, 99),
	}
}

func (s *SynthStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := 0
	for i, t := range s.at {
		if !t.Before(cutoff) {
			s.at[keep] = t
			s.millis[keep] = s.millis[i]
			keep++
		}
	}
	s.at = s.at[:keep]
	s.millis = s.millis[:keep]
}

// percentile interpolates linearly between the two nearest ranks of an
// already-sorted slice.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	rank := (float64(len(sorted)-1) * pct) / 100.0
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}
