package mock

import (
	"context"
	"fmt"
)

// MockRewriter is a test double for ai.QueryRewriter.
type MockRewriter struct {
	// DecomposeFunc is called by Decompose if set.
	// If nil, returns the query unchanged.
	DecomposeFunc func(ctx context.Context, query string) ([]string, error)

	// ExpandFunc is called by Expand if set.
	// If nil, returns the query plus numbered variants.
	ExpandFunc func(ctx context.Context, query string, n int) ([]string, error)

	callCount int
}

// NewMockRewriter creates a mock rewriter with default deterministic behavior.
func NewMockRewriter() *MockRewriter {
	return &MockRewriter{}
}

// Decompose returns the original query as its single sub-query.
func (m *MockRewriter) Decompose(ctx context.Context, query string) ([]string, error) {
	m.callCount++

	if m.DecomposeFunc != nil {
		return m.DecomposeFunc(ctx, query)
	}
	return []string{query}, nil
}

// Expand returns the query followed by deterministic numbered variants.
func (m *MockRewriter) Expand(ctx context.Context, query string, n int) ([]string, error) {
	m.callCount++

	if m.ExpandFunc != nil {
		return m.ExpandFunc(ctx, query, n)
	}

	variants := make([]string, 0, n)
	variants = append(variants, query)
	for i := 2; i <= n; i++ {
		variants = append(variants, fmt.Sprintf("%s (variant %d)", query, i))
	}
	return variants, nil
}

// CallCount returns the number of times any method was called.
func (m *MockRewriter) CallCount() int {
	return m.callCount
}
