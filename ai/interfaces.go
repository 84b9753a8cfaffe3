package ai

import (
	"context"

	"github.com/tasklink/tasklink/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The same input always yields the same vector.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. Batching is an optimization only: the returned vectors are
	// identical to what per-text EmbedText calls would produce, in input
	// order. An empty input yields an empty result, not an error.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryRouter maps a free-text query to the single best-matching service
// name from a known taxonomy.
// Implementations must be thread-safe for concurrent use.
type QueryRouter interface {
	// RouteQuery returns one of knownServices, or RouteAll when no specific
	// service fits. The returned name is not guaranteed to be a member of
	// knownServices; callers must validate it.
	RouteQuery(ctx context.Context, query string, knownServices []string) (string, error)
}

// QueryRewriter restructures queries to improve retrieval recall.
// Implementations must be thread-safe for concurrent use.
type QueryRewriter interface {
	// Decompose breaks a query into 2-4 sub-queries, each focusing on a
	// distinct requirement.
	Decompose(ctx context.Context, query string) ([]string, error)

	// Expand generates n paraphrased variants of a query that might
	// retrieve relevant but slightly different results.
	Expand(ctx context.Context, query string, n int) ([]string, error)
}

// ProfileTagger derives role and skill tags and a prose summary from
// supplier profile text.
// Implementations must be thread-safe for concurrent use.
type ProfileTagger interface {
	// DetectRoles returns professional roles detected in the snippet,
	// lowercase. Output is unconstrained; callers match it against the
	// KnownRoles vocabulary.
	DetectRoles(ctx context.Context, snippet string) ([]string, error)

	// DetectSkills returns free-form key skills detected in the snippet,
	// lowercase.
	DetectSkills(ctx context.Context, snippet string) ([]string, error)

	// SummarizeProfile produces a single-paragraph prose summary of the
	// profile text.
	SummarizeProfile(ctx context.Context, text string) (string, error)
}

// Summarizer produces structured explanations of why candidates match a query.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// StructuredSummary explains why the candidate documents match the
	// query. Malformed model output is a recoverable failure: the
	// implementation returns a nil summary and an error, never panics.
	StructuredSummary(ctx context.Context, query string, docs []core.SearchCandidate) (*core.StructuredSummary, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. Accessors for optional capabilities return nil when
// the capability is not configured.
type Provider interface {
	// Embedder returns the text embedding service. Never nil.
	Embedder() Embedder

	// Router returns the query routing service, or nil if unavailable.
	Router() QueryRouter

	// Rewriter returns the query rewriting service, or nil if unavailable.
	Rewriter() QueryRewriter

	// Tagger returns the profile tagging service, or nil if unavailable.
	Tagger() ProfileTagger

	// Summarizer returns the structured summarization service, or nil if
	// unavailable.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	Close() error
}
