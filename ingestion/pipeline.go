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

package ingestion

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/tasklink/tasklink/ai"
	"github.com/tasklink/tasklink/chunking"
	"github.com/tasklink/tasklink/core"
	"github.com/tasklink/tasklink/extract"
	"github.com/tasklink/tasklink/storage"
)

const (
	defaultPoolSize = 4

	// snippetChunks is how many leading chunks feed profile tagging.
	snippetChunks = 3
)

// Status reports the outcome of an ingestion run.
type Status int

const (
	// StatusIngested means chunks were embedded and stored.
	StatusIngested Status = iota + 1

	// StatusNoContent means the document had no extractable text; nothing
	// was stored and any previously indexed chunks remain untouched.
	StatusNoContent
)

// Result describes what a single ingestion run produced.
type Result struct {
	Status     Status
	ChunkCount int

	// Roles are the vocabulary roles matched from the document, already
	// linked in the catalog. Empty when tagging is unavailable.
	Roles []string

	// Skills are free-form skill tags, populated only when requested.
	Skills []string

	// Summary is a prose profile summary, populated only when requested.
	Summary string
}

// Options control optional enrichment during ingestion.
type Options struct {
	// DetectSkills requests free-form skill tagging.
	DetectSkills bool

	// Summarize requests a prose profile summary.
	Summarize bool
}

// Pipeline ingests supplier documents: extract, chunk, embed, index, tag.
// Safe for concurrent use; runs for the same owner are serialized so a
// replace cannot interleave with itself.
type Pipeline struct {
	index    storage.VectorIndex
	catalog  storage.Catalog
	provider ai.Provider

	pool       *ants.Pool
	poolSize   int
	ownerLocks sync.Map // ownerID -> *sync.Mutex
	maxWords   int
	logger     *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithPoolSize sets the size of the embedding worker pool.
func WithPoolSize(size int) PipelineOption {
	return func(p *Pipeline) {
		if size > 0 {
			p.poolSize = size
		}
	}
}

// WithMaxChunkWords sets the word budget per chunk.
func WithMaxChunkWords(maxWords int) PipelineOption {
	return func(p *Pipeline) {
		if maxWords > 0 {
			p.maxWords = maxWords
		}
	}
}

// NewPipeline creates an ingestion pipeline. The catalog may be nil, in
// which case detected roles are reported but not linked.
func NewPipeline(index storage.VectorIndex, catalog storage.Catalog, provider ai.Provider, opts ...PipelineOption) (*Pipeline, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil || provider.Embedder() == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		index:    index,
		catalog:  catalog,
		provider: provider,
		maxWords: chunking.DefaultMaxWords,
		poolSize: defaultPoolSize,
		logger:   slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		opt(p)
	}

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// Close releases the pipeline's worker pool. It does not close the index,
// catalog, or provider; the caller owns those.
func (p *Pipeline) Close() error {
	p.pool.Release()
	return nil
}

// IngestDocument indexes the document at path under ownerID, replacing any
// chunks previously stored for that owner. Re-ingesting the same document
// is idempotent. Enrichment failures (tagging, linking) are logged and do
// not fail the run.
func (p *Pipeline) IngestDocument(ctx context.Context, path, ownerID string, opts Options) (*Result, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}

	lock := p.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	pages, err := extract.Pages(path)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, page := range pages {
		texts = append(texts, chunking.Collect(page, p.maxWords)...)
	}
	if len(texts) == 0 {
		p.logger.Info("document yielded no chunks", "path", path, "owner", ownerID)
		return &Result{Status: StatusNoContent}, nil
	}

	vectors, err := p.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}

	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.Chunk{
			OwnerID: ownerID,
			Text:    text,
			Vector:  vectors[i],
		}
	}

	if err := p.index.ReplaceChunks(ctx, ownerID, chunks); err != nil {
		return nil, err
	}

	result := &Result{
		Status:     StatusIngested,
		ChunkCount: len(chunks),
	}
	p.enrich(ctx, ownerID, texts, opts, result)

	p.logger.Info("document ingested",
		"path", path, "owner", ownerID,
		"chunks", result.ChunkCount, "roles", len(result.Roles))
	return result, nil
}

// DeleteOwner removes all indexed chunks for a supplier.
func (p *Pipeline) DeleteOwner(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return ErrEmptyOwnerID
	}

	lock := p.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	return p.index.DeleteOwner(ctx, ownerID)
}

func (p *Pipeline) ownerLock(ownerID string) *sync.Mutex {
	lock, _ := p.ownerLocks.LoadOrStore(ownerID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// embedAll embeds texts in batches over the worker pool, preserving input
// order.
func (p *Pipeline) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	const batchSize = 32

	vectors := make([][]float32, len(texts))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			batch, err := p.provider.Embedder().EmbedTexts(ctx, texts[start:end])
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			copy(vectors[start:], batch)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// enrich runs profile tagging and catalog linking. Failures here never fail
// the ingestion run; the chunks are already stored.
func (p *Pipeline) enrich(ctx context.Context, ownerID string, texts []string, opts Options, result *Result) {
	tagger := p.provider.Tagger()
	if tagger == nil {
		return
	}

	snippet := profileSnippet(texts)

	detected, err := tagger.DetectRoles(ctx, snippet)
	if err != nil {
		p.logger.Warn("role detection failed", "owner", ownerID, "err", err)
	} else {
		result.Roles = ai.MatchKnownRoles(detected)
		p.linkRoles(ctx, ownerID, result.Roles)
	}

	if opts.DetectSkills {
		skills, err := tagger.DetectSkills(ctx, snippet)
		if err != nil {
			p.logger.Warn("skill detection failed", "owner", ownerID, "err", err)
		} else {
			result.Skills = skills
		}
	}

	if opts.Summarize {
		summary, err := tagger.SummarizeProfile(ctx, snippet)
		if err != nil {
			p.logger.Warn("profile summary failed", "owner", ownerID, "err", err)
		} else {
			result.Summary = summary
		}
	}
}

// linkRoles records supplier/service links for each matched role.
func (p *Pipeline) linkRoles(ctx context.Context, ownerID string, roles []string) {
	if p.catalog == nil {
		return
	}

	for _, role := range roles {
		service, err := p.catalog.GetOrCreateService(ctx, role, "")
		if err != nil {
			p.logger.Warn("service lookup failed", "role", role, "err", err)
			continue
		}
		if err := p.catalog.LinkSupplierService(ctx, ownerID, service.ID); err != nil {
			p.logger.Warn("supplier link failed", "owner", ownerID, "role", role, "err", err)
		}
	}
}

// profileSnippet joins the leading chunks of a document into the text used
// for profile tagging.
func profileSnippet(texts []string) string {
	n := snippetChunks
	if len(texts) < n {
		n = len(texts)
	}
	return strings.Join(texts[:n], "\n")
}
