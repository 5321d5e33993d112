package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/filter"
	"github.com/hupe1980/termfilter/index"
	"golang.org/x/sync/singleflight"
)

// Cache is a concurrent, byte-bounded LRU of filter results.
//
// Cached sets are shared between callers and must be treated as read-only.
type Cache struct {
	mu  sync.Mutex
	lru *lru

	group   singleflight.Group
	logger  *slog.Logger
	metrics Metrics

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	rejected  atomic.Int64
}

// New creates a Cache that retains at most capacityBytes of results.
func New(capacityBytes int64, opts ...Option) *Cache {
	o := options{
		logger:     slog.New(slog.DiscardHandler),
		metrics:    noopMetrics{},
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache{
		lru:     newLRU(capacityBytes, o.maxEntries, o.rc),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// GetOrLoad returns the result of f on r, evaluating it on a miss.
//
// Readers that do not implement index.Identified, or report segment id 0,
// have no stable identity and bypass the cache. Errors are returned to every
// waiting caller and are not cached.
func (c *Cache) GetOrLoad(ctx context.Context, f filter.Filter, r index.Reader) (docset.DocIDSet, error) {
	id, ok := r.(index.Identified)
	if !ok || id.SegmentID() == 0 {
		return f.DocIDSet(r)
	}
	key := Key{Filter: f.Key(), Segment: id.SegmentID()}

	if s, ok := c.get(key); ok {
		c.hits.Add(1)
		c.metrics.RecordCacheHit()
		return s, nil
	}
	c.misses.Add(1)
	c.metrics.RecordCacheMiss()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// A concurrent flight may have finished between get and Do.
		if s, ok := c.get(key); ok {
			return s, nil
		}
		s, err := f.DocIDSet(r)
		if err != nil {
			return nil, err
		}
		c.add(ctx, key, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(docset.DocIDSet), nil
}

// Get returns the cached result for key without evaluating anything.
func (c *Cache) Get(key Key) (docset.DocIDSet, bool) {
	return c.get(key)
}

func (c *Cache) get(key Key) (docset.DocIDSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.get(key)
}

func (c *Cache) add(ctx context.Context, key Key, s docset.DocIDSet) {
	c.mu.Lock()
	evicted, ok := c.lru.add(key, s)
	c.mu.Unlock()

	if evicted > 0 {
		c.evictions.Add(int64(evicted))
		for range evicted {
			c.metrics.RecordCacheEviction()
		}
	}
	if !ok {
		c.rejected.Add(1)
		c.logger.DebugContext(ctx, "filter result not cached",
			"segment", key.Segment,
			"bytes", sizeOf(s),
		)
	}
}

// Invalidate drops every entry of segment and returns how many were removed.
func (c *Cache) Invalidate(segment uint64) int {
	c.mu.Lock()
	n := c.lru.removeIf(func(k Key) bool { return k.Segment == segment })
	c.mu.Unlock()

	if n > 0 {
		c.logger.Debug("filter cache invalidated", "segment", segment, "entries", n)
	}
	return n
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.removeIf(func(Key) bool { return true })
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}

// Size returns the retained size in bytes.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.size
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	entries, size := c.lru.len(), c.lru.size
	c.mu.Unlock()

	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Rejected:  c.rejected.Load(),
		Entries:   entries,
		Bytes:     size,
	}
}
