package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

// maxSubQueries caps the decomposition output.
const maxSubQueries = 4

// Rewriter implements ai.QueryRewriter using OpenAI-compatible chat APIs.
type Rewriter struct {
	client         llms.Model
	expansionCount int
	logger         *slog.Logger
}

// newRewriter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRewriter(client llms.Model, expansionCount int) *Rewriter {
	return &Rewriter{
		client:         client,
		expansionCount: expansionCount,
		logger:         slog.Default().With("component", "openai-rewriter"),
	}
}

// Decompose breaks a query into sub-queries, each focusing on a distinct
// requirement. The model's answer is parsed line by line.
func (r *Rewriter) Decompose(ctx context.Context, query string) ([]string, error) {
	prompt := fmt.Sprintf(decompositionPromptTemplate, query)
	answer, err := generateText(ctx, r.client, "", prompt, llms.WithTemperature(0.7))
	if err != nil {
		r.logger.Error("decomposition call failed", "err", err)
		return nil, err
	}

	subQueries := splitLines(answer)
	if len(subQueries) == 0 {
		subQueries = []string{query}
	}
	if len(subQueries) > maxSubQueries {
		subQueries = subQueries[:maxSubQueries]
	}

	r.logger.Debug("decomposed query", "query", query, "subQueries", subQueries)
	return subQueries, nil
}

// Expand generates paraphrased variants of the query to widen recall.
// If n is not positive, the configured expansion count is used.
func (r *Rewriter) Expand(ctx context.Context, query string, n int) ([]string, error) {
	if n <= 0 {
		n = r.expansionCount
	}

	prompt := fmt.Sprintf(expansionPromptTemplate, query, n)
	answer, err := generateText(ctx, r.client, expansionSystemPrompt, prompt, llms.WithTemperature(0.8))
	if err != nil {
		r.logger.Error("expansion call failed", "err", err)
		return nil, err
	}

	variants := splitLines(answer)
	if len(variants) == 0 {
		variants = []string{query}
	}
	if len(variants) > n {
		variants = variants[:n]
	}

	r.logger.Debug("expanded query", "query", query, "variants", variants)
	return variants, nil
}
