package index

type slicePostings struct {
	docs []uint32
	pos  int
}

// SlicePostings iterates docs, which must already be ascending and unique.
// The slice is not copied.
func SlicePostings(docs []uint32) PostingsIterator {
	return &slicePostings{docs: docs, pos: -1}
}

func (it *slicePostings) Next() bool {
	if it.pos >= len(it.docs) {
		return false
	}
	it.pos++
	return it.pos < len(it.docs)
}

func (it *slicePostings) Doc() uint32 { return it.docs[it.pos] }

func (it *slicePostings) Err() error { return nil }

type emptyPostings struct{}

func (emptyPostings) Next() bool  { return false }
func (emptyPostings) Doc() uint32 { return 0 }
func (emptyPostings) Err() error  { return nil }

// EmptyPostings returns an iterator with no documents.
func EmptyPostings() PostingsIterator { return emptyPostings{} }

// Collect drains it into a slice. It is meant for tests and debugging.
func Collect(it PostingsIterator) ([]uint32, error) {
	var docs []uint32
	for it.Next() {
		docs = append(docs, it.Doc())
	}
	return docs, it.Err()
}
