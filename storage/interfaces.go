package storage

import (
	"context"

	"github.com/tasklink/tasklink/core"
)

// VectorIndex stores chunk embeddings grouped by owner and serves
// similarity search over them.
// Implementations must be thread-safe and support concurrent access.
type VectorIndex interface {
	// ReplaceChunks atomically replaces all stored chunks for ownerID with
	// the given set (delete-then-insert in one transaction). Every chunk
	// must pass core.ValidateChunk and belong to ownerID.
	ReplaceChunks(ctx context.Context, ownerID string, chunks []*core.Chunk) error

	// Search returns up to k approximate nearest neighbors of vector,
	// highest similarity first. numCandidates bounds the preliminary
	// candidate pool considered before truncation to k; values below k are
	// raised to k. Score thresholds are the caller's concern.
	Search(ctx context.Context, vector []float32, k, numCandidates int) ([]core.SearchCandidate, error)

	// DeleteOwner removes all chunks stored for ownerID. Removing an
	// unknown owner is a no-op.
	DeleteOwner(ctx context.Context, ownerID string) error

	// CountChunks returns the number of chunks stored for ownerID.
	CountChunks(ctx context.Context, ownerID string) (int, error)

	// Close closes the index and releases resources.
	Close() error
}

// Catalog stores the service taxonomy and supplier-service links.
// All name lookups normalize to lowercase before comparison.
// Implementations must be thread-safe and support concurrent access.
type Catalog interface {
	// ListServiceNames returns the names of all known services, lowercase.
	ListServiceNames(ctx context.Context) ([]string, error)

	// FindServiceByName retrieves a service by case-insensitive name.
	// Returns ErrNotFound if no such service exists.
	FindServiceByName(ctx context.Context, name string) (*core.Service, error)

	// GetOrCreateService finds a service by case-insensitive name, creating
	// it with the given description if absent.
	// Thread-safe: handles concurrent creation attempts.
	GetOrCreateService(ctx context.Context, name, description string) (*core.Service, error)

	// LinkSupplierService associates a supplier with a service.
	// Idempotent: linking an existing pair is a no-op, not an error.
	LinkSupplierService(ctx context.Context, supplierID, serviceID string) error

	// SuppliersForService returns the ids of all suppliers linked to the
	// named service. An unknown service yields an empty result, not an
	// error.
	SuppliersForService(ctx context.Context, serviceName string) ([]string, error)

	// ServicesForSupplier returns all services a supplier is linked to.
	ServicesForSupplier(ctx context.Context, supplierID string) ([]*core.Service, error)

	// Close closes the catalog and releases resources.
	Close() error
}
