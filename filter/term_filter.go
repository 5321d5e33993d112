package filter

import (
	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/index"
	"github.com/hupe1980/termfilter/term"
)

// TermFilter matches the documents that contain a single term.
// It is immutable.
type TermFilter struct {
	term term.Term
}

var _ Filter = (*TermFilter)(nil)

// NewTermFilter creates a filter for t.
func NewTermFilter(t term.Term) *TermFilter {
	return &TermFilter{term: term.New(t.Field, t.Value)}
}

// Term returns the filter's term.
func (f *TermFilter) Term() term.Term {
	return f.term
}

// DocIDSet returns the documents containing the term, or docset.None if the
// term does not occur in r.
func (f *TermFilter) DocIDSet(r index.Reader) (docset.DocIDSet, error) {
	bits, err := orPostings(r, f.term, nil)
	if err != nil {
		return nil, err
	}
	return docset.Collapse(bits), nil
}

// Equal reports whether other is a TermFilter on an equal term.
func (f *TermFilter) Equal(other Filter) bool {
	o, ok := other.(*TermFilter)
	if !ok || o == nil {
		return false
	}
	return f.term.Equal(o.term)
}

// Hash is consistent with Equal.
func (f *TermFilter) Hash() uint64 {
	return mix(termSeed ^ f.term.Hash())
}

// Key is the memoization key. Caches rely on it being equal exactly when the
// terms are equal.
func (f *TermFilter) Key() string {
	return termKeyPrefix + f.term.Key()
}

// String renders the term as field:value.
func (f *TermFilter) String() string {
	return f.term.String()
}
