package filter

import (
	"encoding/binary"
	"strings"

	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/index"
	"github.com/hupe1980/termfilter/term"
)

// termSet is an insertion-ordered set of distinct terms.
type termSet struct {
	terms []term.Term
	keys  map[string]struct{}
}

func newTermSet(capacity int) termSet {
	return termSet{
		terms: make([]term.Term, 0, capacity),
		keys:  make(map[string]struct{}, capacity),
	}
}

func (s *termSet) add(t term.Term) bool {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	k := t.Key()
	if _, ok := s.keys[k]; ok {
		return false
	}
	s.keys[k] = struct{}{}
	s.terms = append(s.terms, term.New(t.Field, t.Value))
	return true
}

func (s *termSet) contains(t term.Term) bool {
	_, ok := s.keys[t.Key()]
	return ok
}

func (s *termSet) clone() termSet {
	c := newTermSet(len(s.terms))
	for _, t := range s.terms {
		c.keys[t.Key()] = struct{}{}
		c.terms = append(c.terms, t)
	}
	return c
}

func (s *termSet) docIDSet(r index.Reader) (docset.DocIDSet, error) {
	if len(s.terms) == 0 {
		return docset.None, nil
	}

	var (
		bits *docset.FixedBitSet
		err  error
	)
	for _, t := range s.terms {
		bits, err = orPostings(r, t, bits)
		if err != nil {
			return nil, err
		}
	}
	return docset.Collapse(bits), nil
}

func (s *termSet) equal(o *termSet) bool {
	if len(s.keys) != len(o.keys) {
		return false
	}
	for k := range s.keys {
		if _, ok := o.keys[k]; !ok {
			return false
		}
	}
	return true
}

// hash sums the mixed term hashes, so insertion order does not matter.
func (s *termSet) hash() uint64 {
	h := termsSeed + uint64(len(s.terms))
	for _, t := range s.terms {
		h += mix(t.Hash())
	}
	return mix(h)
}

func (s *termSet) key() string {
	sorted := make([]term.Term, len(s.terms))
	copy(sorted, s.terms)
	term.Sort(sorted)

	var b strings.Builder
	b.WriteString(termsKeyPrefix)
	var lenBuf [binary.MaxVarintLen64]byte
	for _, t := range sorted {
		k := t.Key()
		n := binary.PutUvarint(lenBuf[:], uint64(len(k)))
		b.Write(lenBuf[:n])
		b.WriteString(k)
	}
	return b.String()
}

func (s *termSet) String() string {
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.String()
	}
	return "terms(" + strings.Join(parts, ", ") + ")"
}

type termSetHolder interface {
	termSet() *termSet
}

func equalTermSets(s *termSet, other Filter) bool {
	h, ok := other.(termSetHolder)
	if !ok {
		return false
	}
	o := h.termSet()
	if o == nil {
		return false
	}
	return s.equal(o)
}

// TermsFilter matches the documents that contain at least one of its terms.
// The zero value is an empty filter.
//
// Add may be called at any time, but never concurrently with other methods on
// the same filter. Results are not cached: every DocIDSet call reflects the
// current term set.
type TermsFilter struct {
	set termSet
}

var _ Filter = (*TermsFilter)(nil)

// NewTermsFilter creates a filter seeded with terms. Duplicates are dropped.
func NewTermsFilter(terms ...term.Term) *TermsFilter {
	f := &TermsFilter{set: newTermSet(len(terms))}
	for _, t := range terms {
		f.set.add(t)
	}
	return f
}

// Add inserts t unless an equal term is already present. It reports whether
// the term was new.
func (f *TermsFilter) Add(t term.Term) bool {
	return f.set.add(t)
}

// Contains reports whether an equal term has been added.
func (f *TermsFilter) Contains(t term.Term) bool {
	return f.set.contains(t)
}

// Len returns the number of distinct terms.
func (f *TermsFilter) Len() int {
	return len(f.set.terms)
}

// Terms returns the distinct terms in insertion order.
func (f *TermsFilter) Terms() []term.Term {
	out := make([]term.Term, len(f.set.terms))
	copy(out, f.set.terms)
	return out
}

// DocIDSet returns the union of the documents of every term. A filter with
// no terms returns docset.None without allocating.
func (f *TermsFilter) DocIDSet(r index.Reader) (docset.DocIDSet, error) {
	return f.set.docIDSet(r)
}

// Freeze returns an immutable snapshot of the current terms. The snapshot is
// Equal to f until f is modified.
func (f *TermsFilter) Freeze() Filter {
	return &frozenTermsFilter{set: f.set.clone()}
}

// Equal reports whether other (a TermsFilter or a frozen snapshot) holds the
// same set of terms, regardless of insertion order.
func (f *TermsFilter) Equal(other Filter) bool {
	return equalTermSets(&f.set, other)
}

// Hash is independent of insertion order and consistent with Equal.
func (f *TermsFilter) Hash() uint64 { return f.set.hash() }

// Key is the memoization key: filters with equal term sets have equal keys,
// and caches rely on distinct sets never sharing one.
func (f *TermsFilter) Key() string { return f.set.key() }

// String lists the terms in insertion order.
func (f *TermsFilter) String() string { return f.set.String() }

func (f *TermsFilter) termSet() *termSet {
	if f == nil {
		return nil
	}
	return &f.set
}

type frozenTermsFilter struct {
	set termSet
}

func (f *frozenTermsFilter) DocIDSet(r index.Reader) (docset.DocIDSet, error) {
	return f.set.docIDSet(r)
}

func (f *frozenTermsFilter) Equal(other Filter) bool { return equalTermSets(&f.set, other) }

func (f *frozenTermsFilter) Hash() uint64 { return f.set.hash() }

func (f *frozenTermsFilter) Key() string { return f.set.key() }

func (f *frozenTermsFilter) String() string { return f.set.String() }

func (f *frozenTermsFilter) termSet() *termSet {
	if f == nil {
		return nil
	}
	return &f.set
}
