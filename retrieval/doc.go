// Package retrieval answers customer task queries. An Orchestrator routes
// the query to a service, narrows the supplier pool through the catalog,
// rewrites the query into variants, fans the variants out over the vector
// index, and merges the hits into one ranked supplier list. Optional query
// understanding steps degrade gracefully: when a capability is missing or
// fails, the pipeline falls back to the plain query and keeps going.
package retrieval
