package segment

import (
	"log/slog"

	"github.com/hupe1980/termfilter/resource"
)

type options struct {
	compression Compression
	rc          *resource.Controller
	logger      *slog.Logger
	concurrency int
}

// Option configures encoding and persistence.
type Option func(*options)

// WithCompression selects the body compression used by Encode and Save.
// The default is CompressionLZ4.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController throttles segment reads through rc's IO budget.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger sets the logger for load and save events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds the number of segments LoadAll reads at once.
// Values < 1 mean 4.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: CompressionLZ4,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 4
	}
	return o
}
