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

package retrieval

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/tasklink/tasklink/ai"
	"github.com/tasklink/tasklink/core"
	"github.com/tasklink/tasklink/storage"
)

const (
	// searchMultiplier widens each variant search beyond topK so that the
	// merge stage has enough candidates to dedup from.
	searchMultiplier = 2

	// defaultNumCandidates caps the per-variant scan breadth.
	defaultNumCandidates = 50

	// summaryDocLimit is how many top candidates feed summarization.
	summaryDocLimit = 3

	defaultCallTimeout    = 30 * time.Second
	defaultExpansionCount = 2
	defaultPoolSize       = 4
)

// Options control a single search.
type Options struct {
	// MinScore drops candidates scoring below it. Zero keeps everything.
	MinScore float32

	// Summarize requests a structured summary of the top candidates,
	// attached to the first ranked result.
	Summarize bool
}

// Orchestrator runs the full query pipeline: route, narrow, rewrite,
// fan out, merge, rank. Safe for concurrent use.
type Orchestrator struct {
	index    storage.VectorIndex
	catalog  storage.Catalog
	provider ai.Provider

	understanding  *understanding
	pool           *ants.Pool
	poolSize       int
	expansionCount int
	numCandidates  int
	timeout        time.Duration
	monitor        Monitor
	logger         *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets the orchestrator logger.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMonitor sets the activity monitor.
func WithMonitor(monitor Monitor) OrchestratorOption {
	return func(o *Orchestrator) {
		if monitor != nil {
			o.monitor = monitor
		}
	}
}

// WithExpansionCount sets how many paraphrased variants are requested.
func WithExpansionCount(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.expansionCount = n
		}
	}
}

// WithCallTimeout bounds each understanding model call.
func WithCallTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSearchPoolSize sets the size of the variant fan-out pool.
func WithSearchPoolSize(size int) OrchestratorOption {
	return func(o *Orchestrator) {
		if size > 0 {
			o.poolSize = size
		}
	}
}

// WithNumCandidates caps the per-variant scan breadth.
func WithNumCandidates(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.numCandidates = n
		}
	}
}

// NewOrchestrator creates a retrieval orchestrator.
func NewOrchestrator(index storage.VectorIndex, catalog storage.Catalog, provider ai.Provider, opts ...OrchestratorOption) (*Orchestrator, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if provider == nil || provider.Embedder() == nil {
		return nil, ErrEmbedderRequired
	}

	o := &Orchestrator{
		index:          index,
		catalog:        catalog,
		provider:       provider,
		poolSize:       defaultPoolSize,
		expansionCount: defaultExpansionCount,
		numCandidates:  defaultNumCandidates,
		timeout:        defaultCallTimeout,
		monitor:        NoopMonitor{},
		logger:         slog.Default().With("component", "retrieval"),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.understanding = &understanding{
		provider: provider,
		timeout:  o.timeout,
		logger:   o.logger,
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return nil, err
	}
	o.pool = pool
	return o, nil
}

// Close releases the orchestrator's worker pool. It does not close the
// index, catalog, or provider; the caller owns those.
func (o *Orchestrator) Close() error {
	o.pool.Release()
	return nil
}

// Search answers a customer task query with up to topK ranked suppliers,
// one entry per supplier. Queries that resolve to no specific service or to
// a service with no suppliers yield an empty result, not an error.
func (o *Orchestrator) Search(ctx context.Context, query string, topK int, opts Options) ([]core.RankedResult, error) {
	started := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		return nil, ErrInvalidTopK
	}

	knownServices, err := o.catalog.ListServiceNames(ctx)
	if err != nil {
		return nil, err
	}
	if len(knownServices) == 0 {
		o.logger.Info("search against empty taxonomy", "query", query)
		return nil, nil
	}

	route := o.understanding.Route(ctx, query, knownServices)
	o.monitor.QueryRouted(route.Value, route.Status)
	if route.Value == ai.RouteAll {
		o.logger.Info("query routed to no specific service", "query", query)
		return nil, nil
	}

	supplierIDs, err := o.catalog.SuppliersForService(ctx, route.Value)
	if err != nil {
		return nil, err
	}
	if len(supplierIDs) == 0 {
		o.logger.Info("no suppliers for routed service", "service", route.Value)
		return nil, nil
	}
	allowed := make(map[string]bool, len(supplierIDs))
	for _, id := range supplierIDs {
		allowed[id] = true
	}

	variants := o.buildVariants(ctx, query)

	raw, err := o.fanOut(ctx, variants, topK)
	if err != nil {
		return nil, err
	}

	merged := mergeCandidates(raw, allowed, opts.MinScore)
	if len(merged) > topK {
		merged = merged[:topK]
	}

	results := make([]core.RankedResult, len(merged))
	for i, candidate := range merged {
		results[i] = core.RankedResult{
			OwnerID:   candidate.OwnerID,
			ChunkText: candidate.ChunkText,
			Score:     candidate.Score,
		}
	}

	if opts.Summarize && len(results) > 0 {
		if summary := o.Summarize(ctx, query, merged); summary != nil {
			results[0].Summary = summary
		}
	}

	o.monitor.SearchCompleted(query, len(results), time.Since(started))
	return results, nil
}

// Summarize produces a structured explanation of why the top candidates
// match the query. With no candidates it returns the fixed empty summary.
// Returns nil when summarization is unavailable or the model output is
// malformed; the ranked results stand on their own.
func (o *Orchestrator) Summarize(ctx context.Context, query string, candidates []core.SearchCandidate) *core.StructuredSummary {
	summarizer := o.provider.Summarizer()
	if summarizer == nil {
		return nil
	}
	if len(candidates) == 0 {
		return core.EmptySummary()
	}

	docs := candidates
	if len(docs) > summaryDocLimit {
		docs = docs[:summaryDocLimit]
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	summary, err := summarizer.StructuredSummary(ctx, query, docs)
	if err != nil {
		o.logger.Warn("structured summary failed", "query", query, "err", err)
		return nil
	}
	return summary
}

// buildVariants rewrites the query into the set of texts to search:
// the first sub-query of the decomposition plus its paraphrased variants,
// deduplicated, original first.
func (o *Orchestrator) buildVariants(ctx context.Context, query string) []string {
	decomposed := o.understanding.Decompose(ctx, query)
	primary := decomposed.Value[0]

	variants := []string{primary}
	if o.expansionCount > 0 {
		expanded := o.understanding.Expand(ctx, primary, o.expansionCount)
		variants = append(variants, expanded.Value...)
	}

	seen := make(map[string]bool, len(variants))
	unique := variants[:0]
	for _, variant := range variants {
		variant = strings.TrimSpace(variant)
		if variant == "" || seen[variant] {
			continue
		}
		seen[variant] = true
		unique = append(unique, variant)
	}
	return unique
}

// fanOut embeds each variant and searches the index concurrently. A variant
// that fails is logged and skipped; fanOut errors only when every variant
// failed.
func (o *Orchestrator) fanOut(ctx context.Context, variants []string, topK int) ([]core.SearchCandidate, error) {
	perVariant := make([][]core.SearchCandidate, len(variants))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	failures := 0

	fail := func(err error) {
		mu.Lock()
		failures++
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i, variant := range variants {
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()

			vector, err := o.provider.Embedder().EmbedText(ctx, variant)
			if err != nil {
				o.logger.Warn("variant embedding failed", "variant", variant, "err", err)
				fail(err)
				return
			}

			hits, err := o.index.Search(ctx, vector, topK*searchMultiplier, o.numCandidates)
			if err != nil {
				o.logger.Warn("variant search failed", "variant", variant, "err", err)
				fail(err)
				return
			}

			perVariant[i] = hits
			o.monitor.VariantSearched(variant, len(hits))
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
		}
	}
	wg.Wait()

	if failures == len(variants) && firstErr != nil {
		return nil, firstErr
	}

	var all []core.SearchCandidate
	for _, hits := range perVariant {
		all = append(all, hits...)
	}
	return all, nil
}

// mergeCandidates filters candidates down to the allowed supplier pool and
// the score floor, then collapses to one entry per supplier keeping the
// best-scoring chunk. Filtering runs before deduplication so a supplier
// outside the pool can never shadow an eligible one.
func mergeCandidates(candidates []core.SearchCandidate, allowed map[string]bool, minScore float32) []core.SearchCandidate {
	best := make(map[string]core.SearchCandidate)
	for _, candidate := range candidates {
		if !allowed[candidate.OwnerID] {
			continue
		}
		if minScore > 0 && candidate.Score < minScore {
			continue
		}
		current, ok := best[candidate.OwnerID]
		if !ok || candidate.Score > current.Score {
			best[candidate.OwnerID] = candidate
		}
	}

	merged := make([]core.SearchCandidate, 0, len(best))
	for _, candidate := range best {
		merged = append(merged, candidate)
	}
	slices.SortFunc(merged, func(a, b core.SearchCandidate) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(a.OwnerID, b.OwnerID)
	})
	return merged
}
