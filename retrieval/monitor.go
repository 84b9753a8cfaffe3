package retrieval

import "time"

// Monitor observes orchestrator activity. Implementations must be cheap;
// callbacks run inline on the search path.
type Monitor interface {
	// QueryRouted reports the service a query resolved to.
	QueryRouted(service string, status OutcomeStatus)

	// VariantSearched reports one query variant's raw hit count.
	VariantSearched(variant string, hits int)

	// SearchCompleted reports the final result count and elapsed time.
	SearchCompleted(query string, results int, elapsed time.Duration)
}

// NoopMonitor discards all observations.
type NoopMonitor struct{}

var _ Monitor = NoopMonitor{}

func (NoopMonitor) QueryRouted(string, OutcomeStatus)          {}
func (NoopMonitor) VariantSearched(string, int)                {}
func (NoopMonitor) SearchCompleted(string, int, time.Duration) {}
