package mock

import (
	"context"

	"github.com/tasklink/tasklink/core"
)

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// StructuredSummaryFunc is called by StructuredSummary if set.
	// If nil, uses default deterministic behavior.
	StructuredSummaryFunc func(ctx context.Context, query string, docs []core.SearchCandidate) (*core.StructuredSummary, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default deterministic behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// StructuredSummary names the first candidate's owner with a fixed reasoning.
// With no documents it returns the canonical empty summary.
func (m *MockSummarizer) StructuredSummary(ctx context.Context, query string, docs []core.SearchCandidate) (*core.StructuredSummary, error) {
	m.callCount++

	if m.StructuredSummaryFunc != nil {
		return m.StructuredSummaryFunc(ctx, query, docs)
	}

	if len(docs) == 0 {
		return core.EmptySummary(), nil
	}
	return &core.StructuredSummary{
		CandidateName: docs[0].OwnerID,
		KeyStrengths:  []string{"relevant experience"},
		Reasoning:     "Top-scoring candidate for the query.",
	}, nil
}

// CallCount returns the number of times StructuredSummary was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}
