package cache

import (
	"strconv"

	"github.com/hupe1980/termfilter/docset"
)

// Key identifies a cached filter result.
type Key struct {
	// Filter is the canonical filter key (filter.Filter.Key).
	Filter string
	// Segment is the segment identity (index.Identified.SegmentID).
	Segment uint64
}

func (k Key) String() string {
	return strconv.FormatUint(k.Segment, 10) + "/" + k.Filter
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	// Rejected counts results that were not retained because of the
	// capacity or the global memory limit.
	Rejected int64
	Entries  int
	Bytes    int64
}

// HitRate returns Hits / (Hits + Misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Metrics receives cache events. The root package's MetricsCollector
// implements it.
type Metrics interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheEviction()
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheHit()      {}
func (noopMetrics) RecordCacheMiss()     {}
func (noopMetrics) RecordCacheEviction() {}

// sizeOf returns the retained size of s in bytes. None costs nothing.
func sizeOf(s docset.DocIDSet) int64 {
	if docset.IsNone(s) {
		return 0
	}
	if b, ok := s.(*docset.FixedBitSet); ok {
		return b.SizeInBytes()
	}
	return int64(s.Cardinality()) * 4
}
