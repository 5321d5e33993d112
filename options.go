package termfilter

import (
	"log/slog"

	"github.com/hupe1980/termfilter/cache"
)

type options struct {
	cache            *cache.Cache
	metricsCollector MetricsCollector
	logger           *Logger
	concurrency      int
}

// Option configures an Executor.
type Option func(*options)

// WithCache memoizes per-segment results in c.
//
// Cached results are shared; treat every returned set as read-only.
func WithCache(c *cache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &termfilter.BasicMetricsCollector{}
//	exec := termfilter.New(termfilter.WithMetricsCollector(metrics))
//	// ... evaluate ...
//	stats := metrics.GetStats()
//	fmt.Printf("Evaluations: %d, Avg latency: %dns\n", stats.EvaluateCount, stats.EvaluateAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := termfilter.NewJSONLogger(slog.LevelInfo)
//	exec := termfilter.New(termfilter.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithConcurrency evaluates up to n segments of a composite reader in
// parallel. The default of 1 evaluates them in order.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}
