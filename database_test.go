// Copyright 2025 Tasklink Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tasklink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklink/tasklink/ai/mock"
	"github.com/tasklink/tasklink/ingestion"
	"github.com/tasklink/tasklink/retrieval"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	dir := t.TempDir()
	db, err := NewDatabase(
		filepath.Join(dir, "index"),
		filepath.Join(dir, "catalog.db"),
		WithProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDatabase_IngestAndSearch(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Close()

	plumberDoc := writeProfile(t, `Licensed plumber with a decade of experience.
I install gas boilers, fix burst pipes and service central heating systems.
Emergency call-outs available around the clock across the whole city.`)

	janitorDoc := writeProfile(t, `Professional cleaner for homes and offices.
Deep cleans, regular weekly visits and end-of-tenancy jobs are all covered.
Eco-friendly products used on request at no extra charge.`)

	result, err := pipeline.IngestDocument(ctx, plumberDoc, "supplier-1", ingestion.Options{})
	require.NoError(t, err)
	require.Equal(t, ingestion.StatusIngested, result.Status)
	require.Equal(t, []string{"plumber"}, result.Roles)

	result, err = pipeline.IngestDocument(ctx, janitorDoc, "supplier-2", ingestion.Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"cleaner"}, result.Roles)

	names, err := db.Catalog().ListServiceNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cleaner", "plumber"}, names)

	orchestrator, err := db.NewOrchestrator()
	require.NoError(t, err)
	defer orchestrator.Close()

	results, err := orchestrator.Search(ctx, "I need a plumber to fix my boiler", 5, retrieval.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1, "only suppliers of the routed service are eligible")
	assert.Equal(t, "supplier-1", results[0].OwnerID)
	assert.NotEmpty(t, results[0].ChunkText)

	results, err = orchestrator.Search(ctx, "looking for a cleaner for my office", 5, retrieval.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "supplier-2", results[0].OwnerID)
}

func TestDatabase_SearchUnroutableQuery(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Close()

	doc := writeProfile(t, `Licensed plumber handling boiler installs and pipe repairs.
Fast response times and fair pricing for all residential customers.`)
	_, err = pipeline.IngestDocument(ctx, doc, "supplier-1", ingestion.Options{})
	require.NoError(t, err)

	orchestrator, err := db.NewOrchestrator()
	require.NoError(t, err)
	defer orchestrator.Close()

	results, err := orchestrator.Search(ctx, "help me file my taxes", 5, retrieval.Options{})
	require.NoError(t, err)
	assert.Empty(t, results, "queries outside the taxonomy match nothing")
}

func TestDatabase_SearchWithSummary(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Close()

	doc := writeProfile(t, `Experienced gardener maintaining lawns, hedges and flower beds.
Seasonal planting and garden clearance offered throughout the year.`)
	_, err = pipeline.IngestDocument(ctx, doc, "supplier-1", ingestion.Options{})
	require.NoError(t, err)

	orchestrator, err := db.NewOrchestrator()
	require.NoError(t, err)
	defer orchestrator.Close()

	results, err := orchestrator.Search(ctx, "need a gardener for hedge trimming", 5, retrieval.Options{Summarize: true})
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NotNil(t, results[0].Summary)
	assert.Equal(t, "supplier-1", results[0].Summary.CandidateName)
}

func TestDatabase_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index")
	catalogPath := filepath.Join(dir, "catalog.db")

	db, err := NewDatabase(indexPath, catalogPath, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)

	doc := writeProfile(t, `Certified electrician for domestic rewiring and fuse box upgrades.
All work is inspected and comes with a twelve month guarantee.`)
	_, err = pipeline.IngestDocument(ctx, doc, "supplier-1", ingestion.Options{})
	require.NoError(t, err)

	require.NoError(t, pipeline.Close())
	require.NoError(t, db.Close())

	db, err = NewDatabase(indexPath, catalogPath, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	count, err := db.VectorIndex().CountChunks(ctx, "supplier-1")
	require.NoError(t, err)
	assert.Greater(t, count, 0)

	names, err := db.Catalog().ListServiceNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"electrician"}, names)
}
