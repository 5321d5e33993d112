package index

// Reader is read-only access to one view of an inverted index.
//
// Implementations must be safe for concurrent use.
type Reader interface {
	// Postings returns the documents containing the exact term (field, value).
	Postings(field string, value []byte) (PostingsIterator, error)
	// MaxDoc returns the exclusive upper bound on document ordinals.
	MaxDoc() uint32
}

// PostingsIterator walks a postings list in strictly ascending order.
//
//	for it.Next() {
//	    use(it.Doc())
//	}
//	if err := it.Err(); err != nil { ... }
type PostingsIterator interface {
	// Next advances to the next document. It returns false when the list is
	// exhausted or an error occurred.
	Next() bool
	// Doc returns the current document ordinal. Only valid after Next
	// returned true.
	Doc() uint32
	// Err returns the error that stopped iteration, if any.
	Err() error
}

// Identified is implemented by readers with a stable identity, such as a
// single immutable segment. Caches key results by this identity.
type Identified interface {
	SegmentID() uint64
}
