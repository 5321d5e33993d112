package term

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"slices"
	"strings"
)

// Term is an exact (field, value) pair.
//
// Treat a Term as immutable once constructed. New copies the value so callers
// may reuse their buffers.
type Term struct {
	Field string
	Value []byte
}

// New creates a Term, copying value.
func New(field string, value []byte) Term {
	v := make([]byte, len(value))
	copy(v, value)
	return Term{Field: field, Value: v}
}

// NewString creates a Term from a string value.
func NewString(field, value string) Term {
	return Term{Field: field, Value: []byte(value)}
}

// Equal reports whether both the field and the value bytes are identical.
func (t Term) Equal(other Term) bool {
	return t.Field == other.Field && bytes.Equal(t.Value, other.Value)
}

// Compare orders terms by field, then by value bytes.
func (t Term) Compare(other Term) int {
	if c := strings.Compare(t.Field, other.Field); c != 0 {
		return c
	}
	return bytes.Compare(t.Value, other.Value)
}

// Key returns an injective string encoding of the term, usable as a map key.
// The field is length-prefixed so ("ab", "c") and ("a", "bc") never collide.
func (t Term) Key() string {
	var b strings.Builder
	b.Grow(binary.MaxVarintLen64 + len(t.Field) + len(t.Value))

	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(t.Field)))
	b.Write(lenBuf[:n])
	b.WriteString(t.Field)
	b.Write(t.Value)
	return b.String()
}

// Hash returns a 64-bit FNV-1a hash of Key. Equal terms hash equally, and the
// value is stable across processes.
func (t Term) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Key()))
	return h.Sum64()
}

// String renders the term as field:value.
func (t Term) String() string {
	return t.Field + ":" + string(t.Value)
}

// Sort sorts terms in place by Compare.
func Sort(terms []Term) {
	slices.SortFunc(terms, Term.Compare)
}
