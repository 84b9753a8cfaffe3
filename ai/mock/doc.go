// Package mock provides test double implementations of the AI service
// interfaces.
//
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior via function fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
// Default behavior is deterministic: the embedder hashes text into stable
// vectors, the router picks a known service mentioned in the query, and the
// rewriter returns identity results. NewMockProvider aggregates all doubles;
// NewEmbeddingOnlyProvider builds one whose chat capabilities are nil, for
// testing unavailable-capability fallbacks.
package mock
