package segment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/termfilter/blobstore"
	"github.com/hupe1980/termfilter/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]blobstore.Store {
	return map[string]blobstore.Store{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	seg := buildTestSegment(100)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Save(ctx, store, "segments/000001.seg", seg, WithCompression(CompressionZSTD)))

			got, err := Load(ctx, store, "segments/000001.seg")
			require.NoError(t, err)
			assertSameContent(t, seg, got)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := Load(ctx, store, "missing.seg")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad.seg", []byte("definitely not a segment")))

	_, err := Load(ctx, store, "bad.seg")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoad_WithResourceController(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, "a.seg", buildTestSegment(10)))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	got, err := Load(ctx, store, "a.seg", WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, uint32(10), got.MaxDoc())
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var want []*Segment
			for i := 1; i <= 6; i++ {
				seg := buildTestSegment(i * 3)
				want = append(want, seg)
				require.NoError(t, Save(ctx, store, fmt.Sprintf("idx/%06d.seg", i), seg))
			}
			require.NoError(t, store.Put(ctx, "other/ignored.seg", []byte("x")))

			got, err := LoadAll(ctx, store, "idx/", WithConcurrency(2))
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assertSameContent(t, want[i], got[i])
			}

			r := NewMultiReader(got...)
			assert.Equal(t, uint32(3+6+9+12+15+18), r.MaxDoc())
			assert.Len(t, postings(t, r, "all", "xxx"), int(r.MaxDoc()))
		})
	}
}

func TestLoadAll_Error(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, "idx/1.seg", buildTestSegment(3)))
	require.NoError(t, store.Put(ctx, "idx/2.seg", []byte("garbage")))

	_, err := LoadAll(ctx, store, "idx/")
	assert.ErrorIs(t, err, ErrCorrupt)
}

type listFailStore struct {
	blobstore.Store
	err error
}

func (s listFailStore) List(context.Context, string) ([]string, error) { return nil, s.err }

func TestLoadAll_ListError(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadAll(context.Background(), listFailStore{Store: blobstore.NewMemoryStore(), err: boom}, "")
	assert.ErrorIs(t, err, boom)
}
