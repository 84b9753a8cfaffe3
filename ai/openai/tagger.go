package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tasklink/tasklink/ai"
	"github.com/tmc/langchaingo/llms"
)

// Tagger implements ai.ProfileTagger using OpenAI-compatible chat APIs.
type Tagger struct {
	client    llms.Model
	maxRoles  int
	maxSkills int
	logger    *slog.Logger
}

// newTagger is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTagger(client llms.Model, maxRoles, maxSkills int) *Tagger {
	return &Tagger{
		client:    client,
		maxRoles:  maxRoles,
		maxSkills: maxSkills,
		logger:    slog.Default().With("component", "openai-tagger"),
	}
}

// DetectRoles asks the model for professional roles present in the snippet.
// The prompt offers the KnownRoles vocabulary, but the raw answer is still
// unconstrained; callers filter it with ai.MatchKnownRoles.
func (t *Tagger) DetectRoles(ctx context.Context, snippet string) ([]string, error) {
	prompt := fmt.Sprintf(roleDetectionPromptTemplate,
		t.maxRoles,
		strings.Join(ai.KnownRoles, ", "),
		truncateSnippet(snippet))

	answer, err := generateText(ctx, t.client, "You are a helpful assistant.", prompt, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("role detection call failed", "err", err)
		return nil, err
	}

	roles := splitCommaList(answer)
	if len(roles) > t.maxRoles {
		roles = roles[:t.maxRoles]
	}

	t.logger.Debug("detected roles", "roles", roles)
	return roles, nil
}

// DetectSkills asks the model for key skills present in the snippet.
func (t *Tagger) DetectSkills(ctx context.Context, snippet string) ([]string, error) {
	prompt := fmt.Sprintf(skillDetectionPromptTemplate, t.maxSkills, truncateSnippet(snippet))

	answer, err := generateText(ctx, t.client,
		"You are an assistant that extracts key skills from text.", prompt,
		llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("skill detection call failed", "err", err)
		return nil, err
	}

	skills := splitCommaList(answer)
	if len(skills) > t.maxSkills {
		skills = skills[:t.maxSkills]
	}

	t.logger.Debug("detected skills", "skills", skills)
	return skills, nil
}

// SummarizeProfile produces a single-paragraph prose summary of the profile.
func (t *Tagger) SummarizeProfile(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(profileSummaryPromptTemplate, truncateSnippet(text))

	summary, err := generateText(ctx, t.client, "You are a helpful summarizer.", prompt,
		llms.WithTemperature(0.5),
		llms.WithMaxTokens(512))
	if err != nil {
		t.logger.Error("profile summary call failed", "err", err)
		return "", err
	}

	return summary, nil
}
