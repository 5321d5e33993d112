package docset

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// FixedBitSet is a bitset over the ordinals [0, maxDoc).
//
// It is not safe for concurrent mutation. Evaluations allocate their own
// FixedBitSet, so a returned set is owned by the caller.
type FixedBitSet struct {
	bits   *bitset.BitSet
	maxDoc uint32
}

// NewFixedBitSet creates an empty bitset with capacity maxDoc.
func NewFixedBitSet(maxDoc uint32) *FixedBitSet {
	return &FixedBitSet{
		bits:   bitset.New(uint(maxDoc)),
		maxDoc: maxDoc,
	}
}

// Set marks doc as matching. Ordinals outside [0, maxDoc) are ignored.
func (b *FixedBitSet) Set(doc uint32) {
	if doc >= b.maxDoc {
		return
	}
	b.bits.Set(uint(doc))
}

// Contains reports whether doc is set.
func (b *FixedBitSet) Contains(doc uint32) bool {
	if doc >= b.maxDoc {
		return false
	}
	return b.bits.Test(uint(doc))
}

// Cardinality returns the number of set bits.
func (b *FixedBitSet) Cardinality() int {
	return int(b.bits.Count())
}

// Len returns the capacity (maxDoc).
func (b *FixedBitSet) Len() uint32 {
	return b.maxDoc
}

// All iterates set ordinals in ascending order.
func (b *FixedBitSet) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
			if !yield(uint32(i)) {
				return
			}
		}
	}
}

// Or adds every ordinal of other that fits into this bitset's capacity.
func (b *FixedBitSet) Or(other DocIDSet) {
	if IsNone(other) {
		return
	}
	if o, ok := other.(*FixedBitSet); ok && o.maxDoc <= b.maxDoc {
		b.bits.InPlaceUnion(o.bits)
		return
	}
	for doc := range other.All() {
		b.Set(doc)
	}
}

// OrShifted adds every ordinal of other after adding base to it. It is used
// to lift a per-segment result into a composite ordinal space.
func (b *FixedBitSet) OrShifted(other DocIDSet, base uint32) {
	if IsNone(other) {
		return
	}
	for doc := range other.All() {
		b.Set(base + doc)
	}
}

// Clone returns a deep copy.
func (b *FixedBitSet) Clone() *FixedBitSet {
	return &FixedBitSet{bits: b.bits.Clone(), maxDoc: b.maxDoc}
}

// SizeInBytes approximates the heap footprint of the bit words.
func (b *FixedBitSet) SizeInBytes() int64 {
	return int64((uint64(b.maxDoc) + 63) / 64 * 8)
}

func (b *FixedBitSet) String() string {
	return fmt.Sprintf("FixedBitSet(maxDoc=%d, cardinality=%d)", b.maxDoc, b.Cardinality())
}
