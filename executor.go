package termfilter

import (
	"context"
	"time"

	"github.com/hupe1980/termfilter/cache"
	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/filter"
	"github.com/hupe1980/termfilter/index"
	"github.com/hupe1980/termfilter/segment"
	"golang.org/x/sync/errgroup"
)

// Executor evaluates filters segment by segment.
// It is safe for concurrent use.
type Executor struct {
	cache       *cache.Cache
	metrics     MetricsCollector
	logger      *Logger
	concurrency int
}

// New creates an Executor.
func New(optFns ...Option) *Executor {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		concurrency:      1,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	return &Executor{
		cache:       o.cache,
		metrics:     o.metricsCollector,
		logger:      o.logger,
		concurrency: o.concurrency,
	}
}

// Evaluate returns the documents of r that match f.
//
// A *segment.MultiReader is evaluated one leaf at a time, through the cache
// when one is configured, and the leaf results are shifted into a single set
// sized r.MaxDoc(). Any other reader is evaluated as a whole. The result is
// docset.None when nothing matches.
//
// Reader failures are returned as *EvaluationError wrapping the reader's
// error. ctx is checked between segments; a single segment evaluation is not
// interrupted.
func (e *Executor) Evaluate(ctx context.Context, f filter.Filter, r index.Reader) (docset.DocIDSet, error) {
	if f == nil {
		return nil, ErrNilFilter
	}
	if r == nil {
		return nil, ErrNilReader
	}

	start := time.Now()
	segments := 1

	var (
		result docset.DocIDSet
		err    error
	)
	if mr, ok := r.(*segment.MultiReader); ok {
		leaves := mr.Leaves()
		segments = len(leaves)
		result, err = e.evaluateLeaves(ctx, f, leaves, mr.MaxDoc())
	} else {
		result, err = e.evaluateReader(ctx, f, r)
	}

	matches := 0
	if err == nil {
		matches = result.Cardinality()
	}
	duration := time.Since(start)
	e.metrics.RecordEvaluate(duration, matches, err)
	e.logger.LogEvaluate(ctx, f.String(), segments, matches, duration, err)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Executor) evaluateReader(ctx context.Context, f filter.Filter, r index.Reader) (docset.DocIDSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		s   docset.DocIDSet
		err error
	)
	if e.cache != nil {
		s, err = e.cache.GetOrLoad(ctx, f, r)
	} else {
		s, err = f.DocIDSet(r)
	}
	if err != nil {
		var id uint64
		if ir, ok := r.(index.Identified); ok {
			id = ir.SegmentID()
		}
		return nil, &EvaluationError{Filter: f.String(), Segment: id, cause: err}
	}
	return s, nil
}

func (e *Executor) evaluateLeaves(ctx context.Context, f filter.Filter, leaves []segment.Leaf, maxDoc uint32) (docset.DocIDSet, error) {
	if e.concurrency > 1 && len(leaves) > 1 {
		return e.evaluateLeavesParallel(ctx, f, leaves, maxDoc)
	}

	var bits *docset.FixedBitSet
	for _, leaf := range leaves {
		s, err := e.evaluateReader(ctx, f, leaf.Segment)
		if err != nil {
			return nil, err
		}
		bits = orLeaf(bits, s, leaf.DocBase, maxDoc)
	}
	return docset.Collapse(bits), nil
}

func (e *Executor) evaluateLeavesParallel(ctx context.Context, f filter.Filter, leaves []segment.Leaf, maxDoc uint32) (docset.DocIDSet, error) {
	results := make([]docset.DocIDSet, len(leaves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, leaf := range leaves {
		g.Go(func() error {
			s, err := e.evaluateReader(gctx, f, leaf.Segment)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var bits *docset.FixedBitSet
	for i, leaf := range leaves {
		bits = orLeaf(bits, results[i], leaf.DocBase, maxDoc)
	}
	return docset.Collapse(bits), nil
}

// orLeaf shifts a leaf result into the top-level set, allocating it on the
// first non-empty leaf.
func orLeaf(bits *docset.FixedBitSet, s docset.DocIDSet, base, maxDoc uint32) *docset.FixedBitSet {
	if docset.IsNone(s) {
		return bits
	}
	if bits == nil {
		bits = docset.NewFixedBitSet(maxDoc)
	}
	bits.OrShifted(s, base)
	return bits
}
