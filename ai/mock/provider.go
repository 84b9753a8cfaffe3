package mock

import (
	"github.com/tasklink/tasklink/ai"
)

// MockProvider is a test double for ai.Provider aggregating the other mocks.
// Nil capability fields are reported as unavailable, matching the contract
// of ai.Provider.
type MockProvider struct {
	MockEmbedder   *MockEmbedder
	MockRouter     *MockRouter
	MockRewriter   *MockRewriter
	MockTagger     *MockTagger
	MockSummarizer *MockSummarizer
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider with all capabilities mocked.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder:   NewMockEmbedder(),
		MockRouter:     NewMockRouter(),
		MockRewriter:   NewMockRewriter(),
		MockTagger:     NewMockTagger(),
		MockSummarizer: NewMockSummarizer(),
	}
}

// NewEmbeddingOnlyProvider creates a provider whose chat capabilities are
// all nil, for testing unavailable-capability fallback paths.
func NewEmbeddingOnlyProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder: NewMockEmbedder(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Router returns the mock routing service, or nil if unset.
func (p *MockProvider) Router() ai.QueryRouter {
	if p.MockRouter == nil {
		return nil
	}
	return p.MockRouter
}

// Rewriter returns the mock rewriting service, or nil if unset.
func (p *MockProvider) Rewriter() ai.QueryRewriter {
	if p.MockRewriter == nil {
		return nil
	}
	return p.MockRewriter
}

// Tagger returns the mock tagging service, or nil if unset.
func (p *MockProvider) Tagger() ai.ProfileTagger {
	if p.MockTagger == nil {
		return nil
	}
	return p.MockTagger
}

// Summarizer returns the mock summarization service, or nil if unset.
func (p *MockProvider) Summarizer() ai.Summarizer {
	if p.MockSummarizer == nil {
		return nil
	}
	return p.MockSummarizer
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
