package mock

import (
	"context"
	"strings"

	"github.com/tasklink/tasklink/ai"
)

// MockRouter is a test double for ai.QueryRouter.
type MockRouter struct {
	// RouteQueryFunc is called by RouteQuery if set.
	// If nil, uses default deterministic behavior.
	RouteQueryFunc func(ctx context.Context, query string, knownServices []string) (string, error)

	callCount int
}

// NewMockRouter creates a mock router with default deterministic behavior.
func NewMockRouter() *MockRouter {
	return &MockRouter{}
}

// RouteQuery picks the first known service mentioned verbatim in the query,
// or ai.RouteAll when none matches.
func (m *MockRouter) RouteQuery(ctx context.Context, query string, knownServices []string) (string, error) {
	m.callCount++

	if m.RouteQueryFunc != nil {
		return m.RouteQueryFunc(ctx, query, knownServices)
	}

	lowered := strings.ToLower(query)
	for _, service := range knownServices {
		if strings.Contains(lowered, strings.ToLower(service)) {
			return strings.ToLower(service), nil
		}
	}
	return ai.RouteAll, nil
}

// CallCount returns the number of times RouteQuery was called.
func (m *MockRouter) CallCount() int {
	return m.callCount
}
