package docset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// DocIDSet is a set of document ordinals.
type DocIDSet interface {
	// Cardinality returns the number of matching documents.
	Cardinality() int
	// Contains reports whether doc matches.
	Contains(doc uint32) bool
	// All iterates matching ordinals in ascending order.
	All() iter.Seq[uint32]
}

type noneSet struct{}

func (noneSet) Cardinality() int      { return 0 }
func (noneSet) Contains(uint32) bool  { return false }
func (noneSet) All() iter.Seq[uint32] { return func(func(uint32) bool) {} }
func (noneSet) String() string        { return "NONE" }

// None is the "no document matches" result.
var None DocIDSet = noneSet{}

// IsNone reports whether s is the None sentinel (or nil).
func IsNone(s DocIDSet) bool {
	if s == nil {
		return true
	}
	_, ok := s.(noneSet)
	return ok
}

// Collapse returns None if b is nil or empty, b otherwise.
func Collapse(b *FixedBitSet) DocIDSet {
	if b == nil || b.Cardinality() == 0 {
		return None
	}
	return b
}

// Equal reports whether a and b contain the same ordinals.
func Equal(a, b DocIDSet) bool {
	if IsNone(a) || IsNone(b) {
		return cardinality(a) == 0 && cardinality(b) == 0
	}
	if a.Cardinality() != b.Cardinality() {
		return false
	}
	for doc := range a.All() {
		if !b.Contains(doc) {
			return false
		}
	}
	return true
}

// ToRoaring copies s into a new Roaring bitmap. None yields an empty bitmap.
func ToRoaring(s DocIDSet) *roaring.Bitmap {
	rb := roaring.New()
	if IsNone(s) {
		return rb
	}
	for doc := range s.All() {
		rb.Add(doc)
	}
	return rb
}

// FromRoaring builds a DocIDSet of capacity maxDoc from rb, ignoring ordinals
// at or beyond maxDoc. An empty result collapses to None.
func FromRoaring(rb *roaring.Bitmap, maxDoc uint32) DocIDSet {
	if rb == nil || rb.IsEmpty() {
		return None
	}
	bits := NewFixedBitSet(maxDoc)
	it := rb.Iterator()
	for it.HasNext() {
		bits.Set(it.Next())
	}
	return Collapse(bits)
}

func cardinality(s DocIDSet) int {
	if s == nil {
		return 0
	}
	return s.Cardinality()
}
