package segment

import (
	"log/slog"
	"sync"
)

// Writer appends documents and seals them into segments on Commit.
// It is safe for concurrent use.
type Writer struct {
	mu        sync.Mutex
	segments  []*Segment
	pending   *Builder
	committed uint32
	logger    *slog.Logger

	// snapshot caches the sealed view of pending until the next AddDocument.
	snapshot *Segment
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger used for commit events.
func WithWriterLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter creates an empty Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		pending: NewBuilder(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddDocument appends doc and returns its ordinal in the writer's composite
// ordinal space.
func (w *Writer) AddDocument(doc Document) uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.snapshot = nil
	return w.committed + w.pending.Add(doc)
}

// Commit seals the pending documents into a new segment and returns it.
// It returns nil when there is nothing to commit.
func (w *Writer) Commit() *Segment {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending.Len() == 0 {
		return nil
	}

	seg := w.snapshot
	if seg == nil {
		seg = w.pending.Build()
	}
	w.segments = append(w.segments, seg)
	w.committed += seg.MaxDoc()
	w.pending = NewBuilder()
	w.snapshot = nil

	w.logger.Debug("segment committed",
		"segment", seg.SegmentID(),
		"docs", seg.MaxDoc(),
		"terms", seg.NumTerms(),
	)
	return seg
}

// Segments returns the committed segments in commit order.
func (w *Writer) Segments() []*Segment {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]*Segment, len(w.segments))
	copy(out, w.segments)
	return out
}

// Reader returns a point-in-time view of every document added so far,
// committed or not. Later writes are not visible through it.
func (w *Writer) Reader() *MultiReader {
	w.mu.Lock()
	defer w.mu.Unlock()

	segs := make([]*Segment, len(w.segments), len(w.segments)+1)
	copy(segs, w.segments)
	if w.pending.Len() > 0 {
		if w.snapshot == nil {
			w.snapshot = w.pending.Build()
		}
		segs = append(segs, w.snapshot)
	}
	return NewMultiReader(segs...)
}
