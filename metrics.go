package termfilter

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/termfilter/cache"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A MetricsCollector also satisfies cache.Metrics, so the same value can be
// passed to cache.WithMetrics.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    evaluateCounter   prometheus.Counter
//	    evaluateHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEvaluate(duration time.Duration, matches int, err error) {
//	    p.evaluateCounter.Inc()
//	    p.evaluateHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordEvaluate is called after each Evaluate.
	// matches is the cardinality of the result (0 for None), err is nil if
	// successful.
	RecordEvaluate(duration time.Duration, matches int, err error)

	// RecordCacheHit is called when a segment result is served from cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a segment result has to be computed.
	RecordCacheMiss()

	// RecordCacheEviction is called for every entry evicted to make room.
	RecordCacheEviction()
}

var _ cache.Metrics = (MetricsCollector)(nil)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEvaluate(time.Duration, int, error) {}
func (NoopMetricsCollector) RecordCacheHit()                          {}
func (NoopMetricsCollector) RecordCacheMiss()                         {}
func (NoopMetricsCollector) RecordCacheEviction()                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EvaluateCount      atomic.Int64
	EvaluateErrors     atomic.Int64
	EvaluateNone       atomic.Int64
	EvaluateMatches    atomic.Int64
	EvaluateTotalNanos atomic.Int64
	CacheHits          atomic.Int64
	CacheMisses        atomic.Int64
	CacheEvictions     atomic.Int64
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(duration time.Duration, matches int, err error) {
	b.EvaluateCount.Add(1)
	b.EvaluateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EvaluateErrors.Add(1)
		return
	}
	if matches == 0 {
		b.EvaluateNone.Add(1)
	}
	b.EvaluateMatches.Add(int64(matches))
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() { b.CacheHits.Add(1) }

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss() { b.CacheMisses.Add(1) }

// RecordCacheEviction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheEviction() { b.CacheEvictions.Add(1) }

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EvaluateCount:    b.EvaluateCount.Load(),
		EvaluateErrors:   b.EvaluateErrors.Load(),
		EvaluateNone:     b.EvaluateNone.Load(),
		EvaluateMatches:  b.EvaluateMatches.Load(),
		EvaluateAvgNanos: b.getAvgEvaluateNanos(),
		CacheHits:        b.CacheHits.Load(),
		CacheMisses:      b.CacheMisses.Load(),
		CacheEvictions:   b.CacheEvictions.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEvaluateNanos() int64 {
	count := b.EvaluateCount.Load()
	if count == 0 {
		return 0
	}
	return b.EvaluateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EvaluateCount    int64
	EvaluateErrors   int64
	EvaluateNone     int64
	EvaluateMatches  int64
	EvaluateAvgNanos int64
	CacheHits        int64
	CacheMisses      int64
	CacheEvictions   int64
}
