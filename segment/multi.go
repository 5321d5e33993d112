package segment

import "github.com/hupe1980/termfilter/index"

// Leaf is a segment and the ordinal of its first document in a composite
// reader.
type Leaf struct {
	Segment *Segment
	DocBase uint32
}

// MultiReader presents ordered segments as one ordinal space. Documents of
// the i-th segment follow those of segment i-1.
type MultiReader struct {
	leaves []Leaf
	maxDoc uint32
}

var _ index.Reader = (*MultiReader)(nil)

// NewMultiReader creates a composite reader over segments.
func NewMultiReader(segments ...*Segment) *MultiReader {
	m := &MultiReader{leaves: make([]Leaf, 0, len(segments))}
	for _, s := range segments {
		m.leaves = append(m.leaves, Leaf{Segment: s, DocBase: m.maxDoc})
		m.maxDoc += s.MaxDoc()
	}
	return m
}

// MaxDoc returns the total number of documents.
func (m *MultiReader) MaxDoc() uint32 { return m.maxDoc }

// Leaves returns the segments with their doc bases.
func (m *MultiReader) Leaves() []Leaf {
	out := make([]Leaf, len(m.leaves))
	copy(out, m.leaves)
	return out
}

// Postings concatenates the per-segment postings, shifted by doc base. The
// result is ascending because segments occupy disjoint, ordered ranges.
func (m *MultiReader) Postings(field string, value []byte) (index.PostingsIterator, error) {
	return &multiPostings{leaves: m.leaves, field: field, value: value}, nil
}

type multiPostings struct {
	leaves []Leaf
	field  string
	value  []byte

	next int
	cur  index.PostingsIterator
	base uint32
	doc  uint32
	err  error
}

func (p *multiPostings) Next() bool {
	for p.err == nil {
		if p.cur == nil {
			if p.next >= len(p.leaves) {
				return false
			}
			leaf := p.leaves[p.next]
			p.next++
			it, err := leaf.Segment.Postings(p.field, p.value)
			if err != nil {
				p.err = err
				return false
			}
			p.cur, p.base = it, leaf.DocBase
		}
		if p.cur.Next() {
			p.doc = p.base + p.cur.Doc()
			return true
		}
		p.err = p.cur.Err()
		p.cur = nil
	}
	return false
}

func (p *multiPostings) Doc() uint32 { return p.doc }

func (p *multiPostings) Err() error { return p.err }
