// Package docset provides the result type of term filtering: a set of
// document ordinals within one index view.
//
// A DocIDSet is either the None sentinel (no document matches) or a
// FixedBitSet whose capacity is the reader's MaxDoc. Producers never return a
// FixedBitSet with zero cardinality; Collapse enforces this:
//
//	bits := docset.NewFixedBitSet(maxDoc)
//	// ... set matching ordinals ...
//	return docset.Collapse(bits)
//
// Callers distinguish the two shapes with IsNone. Downstream boolean
// combinators that work on Roaring bitmaps can convert with ToRoaring.
package docset
