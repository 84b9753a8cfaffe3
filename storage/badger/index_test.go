package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklink/tasklink/core"
	"github.com/tasklink/tasklink/storage"
)

func newTestIndex(t *testing.T) storage.VectorIndex {
	t.Helper()
	index, err := NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	return index
}

func chunkFor(owner, text string, vector ...float32) *core.Chunk {
	return &core.Chunk{OwnerID: owner, Text: text, Vector: vector}
}

func TestVectorIndex_ReplaceAndCount(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	err := index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-1", "installs gas boilers", 1, 0),
		chunkFor("supplier-1", "emergency pipe repairs", 0, 1),
	})
	require.NoError(t, err)

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestVectorIndex_ReplaceRemovesStaleChunks(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-1", "old profile text about painting", 1, 0),
		chunkFor("supplier-1", "old profile text about decorating", 0, 1),
	}))

	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-1", "new profile text about plumbing", 1, 1),
	}))

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := index.Search(ctx, []float32{1, 1}, 10, 50)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new profile text about plumbing", hits[0].ChunkText)
}

func TestVectorIndex_ReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	chunks := []*core.Chunk{
		chunkFor("supplier-1", "certified electrician for domestic wiring", 1, 0),
	}
	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", chunks))
	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", chunks))

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVectorIndex_ReplaceValidation(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	err := index.ReplaceChunks(ctx, "", nil)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	err = index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-2", "chunk from another owner", 1),
	})
	assert.ErrorIs(t, err, storage.ErrOwnerMismatch)

	err = index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		{OwnerID: "supplier-1"},
	})
	assert.ErrorIs(t, err, core.ErrInvalidChunk)
}

func TestVectorIndex_SearchOrdering(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-1", "perfectly aligned chunk text", 1, 0),
	}))
	require.NoError(t, index.ReplaceChunks(ctx, "supplier-2", []*core.Chunk{
		chunkFor("supplier-2", "orthogonal chunk text entirely", 0, 1),
	}))
	require.NoError(t, index.ReplaceChunks(ctx, "supplier-3", []*core.Chunk{
		chunkFor("supplier-3", "partially aligned chunk text", 0.5, 0.5),
	}))

	hits, err := index.Search(ctx, []float32{1, 0}, 3, 50)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "supplier-1", hits[0].OwnerID)
	assert.Equal(t, "supplier-3", hits[1].OwnerID)
	assert.Equal(t, "supplier-2", hits[2].OwnerID)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	assert.GreaterOrEqual(t, hits[1].Score, hits[2].Score)
}

func TestVectorIndex_SearchTruncation(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	for _, owner := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, index.ReplaceChunks(ctx, owner, []*core.Chunk{
			chunkFor(owner, "chunk text for supplier "+owner, 1, 0),
		}))
	}

	hits, err := index.Search(ctx, []float32{1, 0}, 2, 50)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	_, err = index.Search(ctx, []float32{1, 0}, 0, 50)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestVectorIndex_SearchSkipsUnembeddedChunks(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-1", "chunk that never got a vector"),
		chunkFor("supplier-1", "chunk with an embedding vector", 1, 0),
	}))

	hits, err := index.Search(ctx, []float32{1, 0}, 10, 50)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chunk with an embedding vector", hits[0].ChunkText)
}

func TestVectorIndex_DeleteOwner(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	require.NoError(t, index.ReplaceChunks(ctx, "supplier-1", []*core.Chunk{
		chunkFor("supplier-1", "chunk text one for deletion", 1, 0),
		chunkFor("supplier-1", "chunk text two for deletion", 0, 1),
	}))
	require.NoError(t, index.ReplaceChunks(ctx, "supplier-2", []*core.Chunk{
		chunkFor("supplier-2", "chunk text that must survive", 1, 1),
	}))

	require.NoError(t, index.DeleteOwner(ctx, "supplier-1"))

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = index.CountChunks(ctx, "supplier-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVectorIndex_EmptyIndexSearch(t *testing.T) {
	ctx := context.Background()
	index := newTestIndex(t)

	hits, err := index.Search(ctx, []float32{1, 0}, 5, 50)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
