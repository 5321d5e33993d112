package filter

import (
	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/index"
	"github.com/hupe1980/termfilter/term"
)

// Filter resolves to a set of documents given a reader.
type Filter interface {
	// DocIDSet evaluates the filter against r. Errors from r are returned
	// unchanged.
	DocIDSet(r index.Reader) (docset.DocIDSet, error)
	// Equal reports structural equality.
	Equal(other Filter) bool
	// Hash is consistent with Equal.
	Hash() uint64
	// Key is a canonical encoding used as the memoization key. Equal filters
	// must have equal keys and unequal filters distinct keys, or cached
	// results are served for the wrong filter.
	Key() string
	String() string
}

const (
	termKeyPrefix  = "term:"
	termsKeyPrefix = "terms:"

	termSeed  uint64 = 0x9e3779b97f4a7c15
	termsSeed uint64 = 0xc2b2ae3d27d4eb4f
)

// orPostings sets every document of t's postings in bits. bits is allocated
// on the first posting so absent terms cost nothing.
func orPostings(r index.Reader, t term.Term, bits *docset.FixedBitSet) (*docset.FixedBitSet, error) {
	it, err := r.Postings(t.Field, t.Value)
	if err != nil {
		return bits, err
	}
	for it.Next() {
		if bits == nil {
			bits = docset.NewFixedBitSet(r.MaxDoc())
		}
		bits.Set(it.Doc())
	}
	return bits, it.Err()
}

// mix is the 64-bit finalizer from MurmurHash3.
func mix(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
