package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlicePostings(t *testing.T) {
	it := SlicePostings([]uint32{1, 5, 9})

	docs, err := Collect(it)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 5, 9}, docs)

	// Exhausted iterators stay exhausted.
	assert.False(t, it.Next())
	assert.False(t, it.Next())
}

func TestSlicePostings_Empty(t *testing.T) {
	docs, err := Collect(SlicePostings(nil))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestEmptyPostings(t *testing.T) {
	it := EmptyPostings()
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}
