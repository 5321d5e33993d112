// Package index defines the read-only inverted index contract consumed by
// term filters.
//
// A Reader exposes, per (field, value), the ascending and duplicate-free
// ordinals of the documents containing that term, plus MaxDoc, the exclusive
// upper bound on ordinals used to size result bitsets.
//
// # Implementing a Reader
//
//	type Reader interface {
//	    Postings(field string, value []byte) (PostingsIterator, error)
//	    MaxDoc() uint32
//	}
//
// Every call to Postings must return an iterator with fresh state; readers
// never share a cursor between callers. An absent field or value is an empty
// iterator, not an error. Errors (corrupt data, failed IO) are returned either
// from Postings or from PostingsIterator.Err and are passed through to the
// caller of the filter unchanged.
//
// The segment package ships an in-memory implementation backed by Roaring
// bitmaps.
package index
