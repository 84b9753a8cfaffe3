package mock

import (
	"context"
	"strings"

	"github.com/tasklink/tasklink/ai"
)

// MockTagger is a test double for ai.ProfileTagger.
type MockTagger struct {
	// DetectRolesFunc is called by DetectRoles if set.
	// If nil, scans the snippet for KnownRoles mentions.
	DetectRolesFunc func(ctx context.Context, snippet string) ([]string, error)

	// DetectSkillsFunc is called by DetectSkills if set.
	// If nil, returns an empty list.
	DetectSkillsFunc func(ctx context.Context, snippet string) ([]string, error)

	// SummarizeProfileFunc is called by SummarizeProfile if set.
	// If nil, returns a fixed placeholder summary.
	SummarizeProfileFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockTagger creates a mock tagger with default deterministic behavior.
func NewMockTagger() *MockTagger {
	return &MockTagger{}
}

// DetectRoles returns every known role mentioned verbatim in the snippet.
func (m *MockTagger) DetectRoles(ctx context.Context, snippet string) ([]string, error) {
	m.callCount++

	if m.DetectRolesFunc != nil {
		return m.DetectRolesFunc(ctx, snippet)
	}

	lowered := strings.ToLower(snippet)
	var roles []string
	for _, role := range ai.KnownRoles {
		if strings.Contains(lowered, role) {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// DetectSkills returns an empty list by default.
func (m *MockTagger) DetectSkills(ctx context.Context, snippet string) ([]string, error) {
	m.callCount++

	if m.DetectSkillsFunc != nil {
		return m.DetectSkillsFunc(ctx, snippet)
	}
	return []string{}, nil
}

// SummarizeProfile returns a fixed placeholder summary.
func (m *MockTagger) SummarizeProfile(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.SummarizeProfileFunc != nil {
		return m.SummarizeProfileFunc(ctx, text)
	}
	return "Experienced professional profile.", nil
}

// CallCount returns the number of times any method was called.
func (m *MockTagger) CallCount() int {
	return m.callCount
}
