package cache

import (
	"log/slog"

	"github.com/hupe1980/termfilter/resource"
)

// DefaultMaxEntries bounds the number of entries, which matters for None
// results since they take no bytes.
const DefaultMaxEntries = 1 << 16

type options struct {
	rc         *resource.Controller
	logger     *slog.Logger
	metrics    Metrics
	maxEntries int
}

// Option configures a Cache.
type Option func(*options)

// WithResourceController charges retained results against rc's memory limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger sets the logger for eviction and invalidation events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics forwards hit, miss and eviction events to m.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithMaxEntries caps the number of entries. Values < 1 mean no cap.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}
