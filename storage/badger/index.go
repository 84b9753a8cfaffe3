package badger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/tasklink/tasklink/core"
	"github.com/tasklink/tasklink/storage"
)

// VectorIndex implements storage.VectorIndex on BadgerDB.
// Chunks are keyed by owner so that one transaction can replace an owner's
// whole chunk set; badger's snapshot isolation keeps concurrent searches
// from observing a half-applied replace.
type VectorIndex struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex opens a vector index stored at filePath.
//
// Returns the storage.VectorIndex interface to enforce abstraction.
func NewVectorIndex(filePath string) (storage.VectorIndex, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return newVectorIndex(backend), nil
}

// newVectorIndex is an internal constructor that returns the concrete type.
func newVectorIndex(backend *Backend) *VectorIndex {
	return &VectorIndex{
		backend: backend,
		logger:  slog.Default().With("component", "badger-index"),
	}
}

// ReplaceChunks atomically replaces all chunks stored for ownerID.
func (x *VectorIndex) ReplaceChunks(ctx context.Context, ownerID string, chunks []*core.Chunk) error {
	if ownerID == "" {
		return fmt.Errorf("%w: empty owner id", storage.ErrInvalidQuery)
	}
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
		if chunk.OwnerID != ownerID {
			return fmt.Errorf("%w: chunk owned by %q, replacing %q",
				storage.ErrOwnerMismatch, chunk.OwnerID, ownerID)
		}
	}

	return x.backend.WithTx(func(tx *badger.Txn) error {
		stale, err := collectOwnerKeys(tx, ownerID)
		if err != nil {
			return err
		}
		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		for _, chunk := range chunks {
			key := makeChunkKey(ownerID, core.IDFromContent(chunk.Text))
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Search scans all stored chunks and returns the k best dot-product matches.
func (x *VectorIndex) Search(ctx context.Context, vector []float32, k, numCandidates int) ([]core.SearchCandidate, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", storage.ErrInvalidQuery)
	}
	if numCandidates < k {
		numCandidates = k
	}

	var candidates []core.SearchCandidate
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip chunks without embeddings
			if len(chunk.Vector) == 0 {
				continue
			}

			candidate := core.SearchCandidate{
				OwnerID:   chunk.OwnerID,
				ChunkText: chunk.Text,
				Score:     dotProduct(vector, chunk.Vector),
			}
			if err := core.ValidateCandidate(&candidate); err != nil {
				x.logger.Warn("dropping malformed index record", "err", err)
				continue
			}
			candidates = append(candidates, candidate)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(candidates, func(a, b core.SearchCandidate) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(candidates) > numCandidates {
		candidates = candidates[:numCandidates]
	}
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// DeleteOwner removes all chunks stored for ownerID.
func (x *VectorIndex) DeleteOwner(ctx context.Context, ownerID string) error {
	return x.backend.WithTx(func(tx *badger.Txn) error {
		keys, err := collectOwnerKeys(tx, ownerID)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountChunks returns the number of chunks stored for ownerID.
func (x *VectorIndex) CountChunks(ctx context.Context, ownerID string) (int, error) {
	count := 0
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeOwnerPrefix(ownerID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Close closes the underlying backend.
func (x *VectorIndex) Close() error {
	return x.backend.Close()
}

// collectOwnerKeys gathers all chunk keys for an owner within a transaction.
func collectOwnerKeys(tx *badger.Txn, ownerID string) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeOwnerPrefix(ownerID)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
