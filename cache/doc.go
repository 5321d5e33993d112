// Package cache memoizes filter results per segment.
//
// Results are keyed by the filter's canonical Key and the segment's
// identity, so structurally equal filters share an entry. Segments are
// immutable, which makes entries valid until the segment is dropped; call
// Invalidate when that happens.
//
// The cache is bounded by bytes and evicts in LRU order. A resource.Controller
// can additionally cap the memory of all caches in the process; entries it
// refuses are returned to the caller but not retained.
//
// Concurrent misses on the same key are evaluated once.
package cache
