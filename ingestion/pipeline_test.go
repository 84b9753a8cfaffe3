package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklink/tasklink/ai/mock"
	"github.com/tasklink/tasklink/extract"
	"github.com/tasklink/tasklink/storage"
	"github.com/tasklink/tasklink/storage/badger"
	"github.com/tasklink/tasklink/storage/sqlite"
)

const plumberProfile = `I am a licensed plumber with over ten years of experience in residential work.
I install and repair gas boilers, water heaters and central heating systems.
Emergency call-outs are available around the clock for burst pipes and leaks.
Customers praise my punctuality and the cleanliness of my work sites.`

func newTestPipeline(t *testing.T, provider *mock.MockProvider) (*Pipeline, storage.VectorIndex, storage.Catalog) {
	t.Helper()

	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	catalog, err := sqlite.NewCatalog(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	pipeline, err := NewPipeline(index, catalog, provider)
	require.NoError(t, err)
	t.Cleanup(func() { pipeline.Close() })

	return pipeline, index, catalog
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPipeline_IngestDocument(t *testing.T) {
	ctx := context.Background()
	pipeline, index, catalog := newTestPipeline(t, mock.NewMockProvider())

	path := writeDoc(t, "profile.txt", plumberProfile)

	result, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
	require.NoError(t, err)

	assert.Equal(t, StatusIngested, result.Status)
	assert.Greater(t, result.ChunkCount, 0)
	assert.Equal(t, []string{"plumber"}, result.Roles)

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Equal(t, result.ChunkCount, count)

	suppliers, err := catalog.SuppliersForService(ctx, "plumber")
	require.NoError(t, err)
	assert.Equal(t, []string{"supplier-1"}, suppliers, "detected role is linked in the catalog")
}

func TestPipeline_IngestDocument_NoContent(t *testing.T) {
	ctx := context.Background()
	pipeline, index, _ := newTestPipeline(t, mock.NewMockProvider())

	// Previously indexed chunks must survive a no-content re-ingest.
	require.NoError(t, func() error {
		path := writeDoc(t, "profile.txt", plumberProfile)
		_, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
		return err
	}())
	before, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	require.Greater(t, before, 0)

	empty := writeDoc(t, "empty.txt", "   \n  ")
	result, err := pipeline.IngestDocument(ctx, empty, "supplier-1", Options{})
	require.NoError(t, err)

	assert.Equal(t, StatusNoContent, result.Status)
	assert.Zero(t, result.ChunkCount)

	after, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPipeline_IngestDocument_ReplacesPreviousChunks(t *testing.T) {
	ctx := context.Background()
	pipeline, index, _ := newTestPipeline(t, mock.NewMockProvider())

	long := writeDoc(t, "long.txt", plumberProfile)
	_, err := pipeline.IngestDocument(ctx, long, "supplier-1", Options{})
	require.NoError(t, err)

	short := writeDoc(t, "short.txt", "Reliable local plumber offering boiler repairs and installations.")
	result, err := pipeline.IngestDocument(ctx, short, "supplier-1", Options{})
	require.NoError(t, err)

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Equal(t, result.ChunkCount, count, "stale chunks from the first document are gone")
}

func TestPipeline_IngestDocument_Validation(t *testing.T) {
	ctx := context.Background()
	pipeline, _, _ := newTestPipeline(t, mock.NewMockProvider())

	_, err := pipeline.IngestDocument(ctx, "whatever.txt", "", Options{})
	assert.ErrorIs(t, err, ErrEmptyOwnerID)

	path := writeDoc(t, "image.png", "not really an image")
	_, err = pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)

	_, err = pipeline.IngestDocument(ctx, filepath.Join(t.TempDir(), "missing.txt"), "supplier-1", Options{})
	assert.Error(t, err)
}

func TestPipeline_IngestDocument_WithoutTagger(t *testing.T) {
	ctx := context.Background()
	pipeline, index, _ := newTestPipeline(t, mock.NewEmbeddingOnlyProvider())

	path := writeDoc(t, "profile.txt", plumberProfile)
	result, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
	require.NoError(t, err)

	assert.Equal(t, StatusIngested, result.Status)
	assert.Empty(t, result.Roles, "no tagger, no roles")

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Greater(t, count, 0, "indexing works without chat capabilities")
}

func TestPipeline_IngestDocument_OptionalEnrichment(t *testing.T) {
	ctx := context.Background()
	provider := mock.NewMockProvider()
	provider.MockTagger.DetectSkillsFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"boiler installation", "leak detection"}, nil
	}
	pipeline, _, _ := newTestPipeline(t, provider)

	path := writeDoc(t, "profile.txt", plumberProfile)

	plain, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
	require.NoError(t, err)
	assert.Empty(t, plain.Skills)
	assert.Empty(t, plain.Summary)

	enriched, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{
		DetectSkills: true,
		Summarize:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"boiler installation", "leak detection"}, enriched.Skills)
	assert.NotEmpty(t, enriched.Summary)
}

func TestPipeline_TaggingFailureDoesNotFailIngest(t *testing.T) {
	ctx := context.Background()
	provider := mock.NewMockProvider()
	provider.MockTagger.DetectRolesFunc = func(_ context.Context, _ string) ([]string, error) {
		return nil, assert.AnError
	}
	pipeline, index, _ := newTestPipeline(t, provider)

	path := writeDoc(t, "profile.txt", plumberProfile)
	result, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
	require.NoError(t, err)

	assert.Equal(t, StatusIngested, result.Status)
	assert.Empty(t, result.Roles)

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Greater(t, count, 0)
}

func TestPipeline_DeleteOwner(t *testing.T) {
	ctx := context.Background()
	pipeline, index, _ := newTestPipeline(t, mock.NewMockProvider())

	path := writeDoc(t, "profile.txt", plumberProfile)
	_, err := pipeline.IngestDocument(ctx, path, "supplier-1", Options{})
	require.NoError(t, err)

	require.NoError(t, pipeline.DeleteOwner(ctx, "supplier-1"))

	count, err := index.CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, pipeline.DeleteOwner(ctx, ""), ErrEmptyOwnerID)
}

func TestNewPipeline_Validation(t *testing.T) {
	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer index.Close()

	_, err = NewPipeline(nil, nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrIndexRequired)

	_, err = NewPipeline(index, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
