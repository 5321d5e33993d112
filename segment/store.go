package segment

import (
	"context"
	"fmt"

	"github.com/hupe1980/termfilter/blobstore"
	"golang.org/x/sync/errgroup"
)

// Save encodes seg and stores it under name.
func Save(ctx context.Context, store blobstore.Store, name string, seg *Segment, opts ...Option) error {
	o := applyOptions(opts)

	data, err := Marshal(seg, opts...)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("segment: save %q: %w", name, err)
	}

	o.logger.DebugContext(ctx, "segment saved",
		"name", name,
		"docs", seg.MaxDoc(),
		"bytes", len(data),
		"compression", o.compression.String(),
	)
	return nil
}

// Load reads and decodes the segment stored under name.
func Load(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*Segment, error) {
	o := applyOptions(opts)
	return load(ctx, store, name, &o)
}

func load(ctx context.Context, store blobstore.Store, name string, o *options) (*Segment, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("segment: open %q: %w", name, err)
	}
	defer blob.Close()

	if err := o.rc.AcquireIO(ctx, int(blob.Size())); err != nil {
		return nil, err
	}

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, fmt.Errorf("segment: read %q: %w", name, err)
	}

	seg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("segment: decode %q: %w", name, err)
	}

	o.logger.DebugContext(ctx, "segment loaded",
		"name", name,
		"segment", seg.SegmentID(),
		"docs", seg.MaxDoc(),
		"bytes", len(data),
	)
	return seg, nil
}

// LoadAll loads every blob whose name starts with prefix, in name order.
// Loads run concurrently; the first error cancels the rest.
func LoadAll(ctx context.Context, store blobstore.Store, prefix string, opts ...Option) ([]*Segment, error) {
	o := applyOptions(opts)

	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("segment: list %q: %w", prefix, err)
	}

	segs := make([]*Segment, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range names {
		g.Go(func() error {
			seg, err := load(gctx, store, name, &o)
			if err != nil {
				return err
			}
			segs[i] = seg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segs, nil
}
