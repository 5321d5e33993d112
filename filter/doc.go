// Package filter resolves term-equality predicates against an inverted index
// into document sets.
//
// Two variants implement Filter:
//
//   - TermFilter matches the documents containing one exact term.
//   - TermsFilter matches the documents containing at least one of a set of
//     terms (logical OR). Terms are added incrementally with Add; adding a
//     term that is already present changes nothing.
//
// Both return docset.None when nothing matches and a docset.FixedBitSet sized
// to the reader's MaxDoc otherwise. A returned bitset is never empty.
//
//	f := filter.NewTermsFilter()
//	f.Add(term.NewString("field1", "20"))
//	f.Add(term.NewString("field1", "10"))
//	docs, err := f.DocIDSet(reader)
//
// # Equality as a cache key
//
// Equal, Hash and Key are a correctness requirement, not a convenience:
// memoization layers (see package cache) key results by Key plus the identity
// of the segment, so two filters that match the same documents on every index
// must report the same Key, and two filters with the same Key must be Equal.
// A TermsFilter's identity follows its term set, so it changes when Add
// inserts a new term.
//
// # Concurrency
//
// DocIDSet allocates its own bitset and requests fresh postings per call, so
// concurrent evaluations need no locking. TermsFilter.Add must not run
// concurrently with any other method on the same filter; call Freeze to get
// an immutable snapshot that can be shared freely.
package filter
