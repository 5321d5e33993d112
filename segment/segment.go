package segment

import (
	"bytes"
	"slices"
	"sort"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/termfilter/index"
)

var lastSegmentID atomic.Uint64

// NewSegmentID returns a process-unique segment identifier.
func NewSegmentID() uint64 {
	return lastSegmentID.Add(1)
}

// Segment is an immutable inverted index over documents [0, MaxDoc).
// It is safe for concurrent use.
type Segment struct {
	id     uint64
	maxDoc uint32
	// field -> value -> docs
	fields map[string]map[string]*roaring.Bitmap
}

var (
	_ index.Reader     = (*Segment)(nil)
	_ index.Identified = (*Segment)(nil)
)

// SegmentID returns the segment's identity.
func (s *Segment) SegmentID() uint64 { return s.id }

// MaxDoc returns the number of documents in the segment.
func (s *Segment) MaxDoc() uint32 { return s.maxDoc }

// Postings returns the documents that contain value in field.
func (s *Segment) Postings(field string, value []byte) (index.PostingsIterator, error) {
	rb := s.bitmap(field, value)
	if rb == nil {
		return index.EmptyPostings(), nil
	}
	return &bitmapPostings{it: rb.Iterator()}, nil
}

// DocFreq returns the number of documents that contain value in field.
func (s *Segment) DocFreq(field string, value []byte) int {
	rb := s.bitmap(field, value)
	if rb == nil {
		return 0
	}
	return int(rb.GetCardinality())
}

// Fields returns the indexed field names, sorted.
func (s *Segment) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Terms returns the distinct values of field, sorted by bytes.
func (s *Segment) Terms(field string) [][]byte {
	values := s.fields[field]
	out := make([][]byte, 0, len(values))
	for v := range values {
		out = append(out, []byte(v))
	}
	slices.SortFunc(out, bytes.Compare)
	return out
}

// NumTerms returns the number of distinct (field, value) pairs.
func (s *Segment) NumTerms() int {
	n := 0
	for _, values := range s.fields {
		n += len(values)
	}
	return n
}

func (s *Segment) bitmap(field string, value []byte) *roaring.Bitmap {
	values, ok := s.fields[field]
	if !ok {
		return nil
	}
	return values[string(value)]
}

// bitmapPostings adapts a Roaring iterator. Each call to Postings gets its
// own iterator, so concurrent readers never share a cursor.
type bitmapPostings struct {
	it  roaring.IntPeekable
	doc uint32
}

func (p *bitmapPostings) Next() bool {
	if !p.it.HasNext() {
		return false
	}
	p.doc = p.it.Next()
	return true
}

func (p *bitmapPostings) Doc() uint32 { return p.doc }

func (p *bitmapPostings) Err() error { return nil }
