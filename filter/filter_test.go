package filter

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/index"
	"github.com/hupe1980/termfilter/segment"
	"github.com/hupe1980/termfilter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScenarioReader indexes 100 documents with field1=i*10 and all=xxx,
// committing after documents 0, 40 and 80.
func newScenarioReader(t *testing.T) *segment.MultiReader {
	t.Helper()
	w := segment.NewWriter()
	for i := 0; i < 100; i++ {
		w.AddDocument(segment.NewDocument(
			segment.StringField("field1", strconv.Itoa(i*10)),
			segment.StringField("all", "xxx"),
		))
		if i%40 == 0 {
			w.Commit()
		}
	}
	r := w.Reader()
	require.Equal(t, uint32(100), r.MaxDoc())
	return r
}

func docIDs(s docset.DocIDSet) []uint32 {
	var out []uint32
	for doc := range s.All() {
		out = append(out, doc)
	}
	return out
}

func TestTermFilter(t *testing.T) {
	r := newScenarioReader(t)

	tests := []struct {
		name string
		term term.Term
		want []uint32
	}{
		{"absent", term.NewString("field1", "19"), nil},
		{"single", term.NewString("field1", "20"), []uint32{2}},
		{"first segment", term.NewString("field1", "0"), []uint32{0}},
		{"pending segment", term.NewString("field1", "990"), []uint32{99}},
		{"absent field", term.NewString("nope", "20"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTermFilter(tt.term).DocIDSet(r)
			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, docset.IsNone(got))
				assert.Equal(t, docset.None, got)
				return
			}
			assert.Equal(t, tt.want, docIDs(got))
		})
	}
}

func TestTermFilter_EveryDocument(t *testing.T) {
	r := newScenarioReader(t)

	got, err := NewTermFilter(term.NewString("all", "xxx")).DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Cardinality())

	bits, ok := got.(*docset.FixedBitSet)
	require.True(t, ok)
	assert.Equal(t, uint32(100), bits.Len())
}

func TestTermsFilter(t *testing.T) {
	r := newScenarioReader(t)

	f := NewTermsFilter()
	got, err := f.DocIDSet(r)
	require.NoError(t, err)
	assert.True(t, docset.IsNone(got), "empty filter")

	f.Add(term.NewString("field1", "19"))
	got, err = f.DocIDSet(r)
	require.NoError(t, err)
	assert.True(t, docset.IsNone(got), "only an absent term")

	f.Add(term.NewString("field1", "20"))
	got, err = f.DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Cardinality())

	f.Add(term.NewString("field1", "10"))
	got, err = f.DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Cardinality())
	assert.Equal(t, []uint32{1, 2}, docIDs(got))

	f.Add(term.NewString("field1", "00"))
	got, err = f.DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Cardinality())
}

func TestTermsFilter_Union(t *testing.T) {
	b := segment.NewBuilder()
	b.Add(segment.NewDocument(segment.StringField("tag", "a")))
	b.Add(segment.NewDocument(segment.StringField("tag", "a"), segment.StringField("tag", "b")))
	b.Add(segment.NewDocument(segment.StringField("tag", "b")))
	b.Add(segment.NewDocument(segment.StringField("tag", "c")))
	b.Add(segment.NewDocument(segment.StringField("other", "a")))
	seg := b.Build()

	f := NewTermsFilter(term.NewString("tag", "a"), term.NewString("tag", "b"))
	got, err := f.DocIDSet(seg)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, docIDs(got))

	for _, tt := range f.Terms() {
		single, err := NewTermFilter(tt).DocIDSet(seg)
		require.NoError(t, err)
		for doc := range single.All() {
			assert.True(t, got.Contains(doc), "union must cover %s doc %d", tt, doc)
		}
	}
}

func TestTermsFilter_AddIsIdempotent(t *testing.T) {
	r := newScenarioReader(t)

	f := NewTermsFilter(term.NewString("field1", "20"), term.NewString("field1", "30"))
	before, err := f.DocIDSet(r)
	require.NoError(t, err)
	hash, key := f.Hash(), f.Key()

	assert.False(t, f.Add(term.NewString("field1", "20")))
	assert.Equal(t, 2, f.Len())

	after, err := f.DocIDSet(r)
	require.NoError(t, err)
	assert.True(t, docset.Equal(before, after))
	assert.Equal(t, hash, f.Hash())
	assert.Equal(t, key, f.Key())
}

func TestTermsFilter_SeedDuplicates(t *testing.T) {
	f := NewTermsFilter(
		term.NewString("f", "a"),
		term.NewString("f", "a"),
		term.NewString("f", "b"),
	)
	assert.Equal(t, 2, f.Len())
	assert.True(t, f.Contains(term.NewString("f", "a")))
	assert.False(t, f.Contains(term.NewString("g", "a")))
	assert.Equal(t, []term.Term{term.NewString("f", "a"), term.NewString("f", "b")}, f.Terms())
}

func TestTermsFilter_ZeroValue(t *testing.T) {
	r := newScenarioReader(t)

	var f TermsFilter
	got, err := f.DocIDSet(r)
	require.NoError(t, err)
	assert.True(t, docset.IsNone(got))
	assert.True(t, f.Equal(NewTermsFilter()))
	assert.Equal(t, NewTermsFilter().Key(), f.Key())

	assert.True(t, f.Add(term.NewString("field1", "20")))
	assert.False(t, f.Add(term.NewString("field1", "20")))
	assert.Equal(t, 1, f.Len())

	got, err = f.DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, docIDs(got))
}

func TestTermsFilter_CopiesAddedTerms(t *testing.T) {
	value := []byte("abc")
	f := NewTermsFilter()
	f.Add(term.Term{Field: "f", Value: value})
	value[0] = 'x'

	assert.True(t, f.Contains(term.NewString("f", "abc")))
	assert.False(t, f.Contains(term.NewString("f", "xbc")))
}

func TestTermFilter_CopiesTerm(t *testing.T) {
	value := []byte("abc")
	f := NewTermFilter(term.Term{Field: "f", Value: value})
	value[0] = 'x'

	assert.Equal(t, "abc", string(f.Term().Value))
}

func TestFilter_Equality(t *testing.T) {
	a := NewTermFilter(term.NewString("f", "1"))
	b := NewTermFilter(term.NewString("f", "1"))
	c := NewTermFilter(term.NewString("f", "2"))
	d := NewTermFilter(term.NewString("g", "1"))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.NotEqual(t, a.Key(), c.Key())
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal((*TermFilter)(nil)))

	x := NewTermsFilter(term.NewString("f", "1"), term.NewString("f", "2"))
	y := NewTermsFilter(term.NewString("f", "2"), term.NewString("f", "1"))
	z := NewTermsFilter(term.NewString("f", "1"))

	assert.True(t, x.Equal(y), "insertion order is irrelevant")
	assert.True(t, y.Equal(x))
	assert.Equal(t, x.Hash(), y.Hash())
	assert.Equal(t, x.Key(), y.Key())
	assert.False(t, x.Equal(z))
	assert.NotEqual(t, x.Key(), z.Key())
	assert.False(t, x.Equal(nil))
	assert.False(t, x.Equal((*TermsFilter)(nil)))

	// A single-term set and a TermFilter match the same documents but are
	// different filters.
	assert.False(t, z.Equal(a))
	assert.False(t, a.Equal(z))
	assert.NotEqual(t, z.Key(), a.Key())

	assert.True(t, NewTermsFilter().Equal(NewTermsFilter()))
	assert.Equal(t, NewTermsFilter().Key(), NewTermsFilter().Key())
}

func TestFilter_KeysAreUnambiguous(t *testing.T) {
	// Field/value boundaries must not be able to shift.
	a := NewTermFilter(term.NewString("ab", "c"))
	b := NewTermFilter(term.NewString("a", "bc"))
	assert.NotEqual(t, a.Key(), b.Key())
	assert.False(t, a.Equal(b))

	x := NewTermsFilter(term.NewString("f", "ab"), term.NewString("f", "c"))
	y := NewTermsFilter(term.NewString("f", "a"), term.NewString("f", "bc"))
	assert.NotEqual(t, x.Key(), y.Key())
	assert.False(t, x.Equal(y))
}

func TestTermsFilter_Freeze(t *testing.T) {
	f := NewTermsFilter(term.NewString("f", "1"))
	frozen := f.Freeze()

	assert.True(t, f.Equal(frozen))
	assert.True(t, frozen.Equal(f))
	assert.Equal(t, f.Hash(), frozen.Hash())
	assert.Equal(t, f.Key(), frozen.Key())
	assert.Equal(t, f.String(), frozen.String())

	f.Add(term.NewString("f", "2"))

	assert.False(t, f.Equal(frozen))
	assert.NotEqual(t, f.Key(), frozen.Key())
	assert.True(t, frozen.Equal(NewTermsFilter(term.NewString("f", "1"))))
}

func TestTermsFilter_FrozenEvaluates(t *testing.T) {
	r := newScenarioReader(t)

	f := NewTermsFilter(term.NewString("field1", "10"), term.NewString("field1", "20"))
	frozen := f.Freeze()
	f.Add(term.NewString("field1", "30"))

	got, err := frozen.DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, docIDs(got))
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "f:1", NewTermFilter(term.NewString("f", "1")).String())
	assert.Equal(t, "terms(f:1, g:2)",
		NewTermsFilter(term.NewString("f", "1"), term.NewString("g", "2")).String())
	assert.Equal(t, "terms()", NewTermsFilter().String())
}

type fakeReader struct {
	maxDoc     uint32
	postings   map[string][]uint32
	openErr    error
	iterateErr error
	calls      int
}

func (r *fakeReader) Postings(field string, value []byte) (index.PostingsIterator, error) {
	r.calls++
	if r.openErr != nil {
		return nil, r.openErr
	}
	docs := r.postings[field+":"+string(value)]
	if r.iterateErr != nil {
		return &erroringPostings{it: index.SlicePostings(docs), err: r.iterateErr}, nil
	}
	return index.SlicePostings(docs), nil
}

func (r *fakeReader) MaxDoc() uint32 { return r.maxDoc }

type erroringPostings struct {
	it  index.PostingsIterator
	err error
}

func (p *erroringPostings) Next() bool { return p.it.Next() }

func (p *erroringPostings) Doc() uint32 { return p.it.Doc() }

func (p *erroringPostings) Err() error { return p.err }

func TestFilter_ErrorPropagation(t *testing.T) {
	boom := errors.New("index unavailable")

	filters := map[string]Filter{
		"term":  NewTermFilter(term.NewString("f", "a")),
		"terms": NewTermsFilter(term.NewString("f", "a"), term.NewString("f", "b")),
	}
	readers := map[string]*fakeReader{
		"open":    {maxDoc: 4, openErr: boom},
		"iterate": {maxDoc: 4, postings: map[string][]uint32{"f:a": {1}}, iterateErr: boom},
	}
	for fname, f := range filters {
		for rname, r := range readers {
			t.Run(fname+"/"+rname, func(t *testing.T) {
				got, err := f.DocIDSet(r)
				assert.Same(t, boom, err)
				assert.Nil(t, got)
			})
		}
	}
}

func TestTermsFilter_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	r := &fakeReader{maxDoc: 4, openErr: boom}

	_, err := NewTermsFilter(term.NewString("f", "a"), term.NewString("f", "b")).DocIDSet(r)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, r.calls)
}

func TestFilter_EmptyPostingsReturnNone(t *testing.T) {
	r := &fakeReader{maxDoc: 0, postings: map[string][]uint32{}}

	got, err := NewTermFilter(term.NewString("f", "a")).DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, docset.None, got)

	got, err = NewTermsFilter(term.NewString("f", "a")).DocIDSet(r)
	require.NoError(t, err)
	assert.Equal(t, docset.None, got)
}

func TestFilter_OutOfRangePostingsCollapse(t *testing.T) {
	// Postings at or beyond MaxDoc are dropped; nothing left means None.
	r := &fakeReader{maxDoc: 2, postings: map[string][]uint32{"f:a": {5, 7}}}

	got, err := NewTermFilter(term.NewString("f", "a")).DocIDSet(r)
	require.NoError(t, err)
	assert.True(t, docset.IsNone(got))
}

func TestFilter_ConcurrentEvaluation(t *testing.T) {
	r := newScenarioReader(t)
	tf := NewTermFilter(term.NewString("all", "xxx"))
	frozen := NewTermsFilter(term.NewString("field1", "10"), term.NewString("field1", "20")).Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			got, err := tf.DocIDSet(r)
			if assert.NoError(t, err) {
				assert.Equal(t, 100, got.Cardinality())
			}
			got, err = frozen.DocIDSet(r)
			if assert.NoError(t, err) {
				assert.Equal(t, 2, got.Cardinality())
			}
		}()
	}
	wg.Wait()
}

func TestFilter_ResultsAreIndependent(t *testing.T) {
	r := newScenarioReader(t)
	f := NewTermFilter(term.NewString("field1", "20"))

	a, err := f.DocIDSet(r)
	require.NoError(t, err)
	b, err := f.DocIDSet(r)
	require.NoError(t, err)

	a.(*docset.FixedBitSet).Set(50)
	assert.Equal(t, 1, b.Cardinality())
}
