package badger

import (
	"fmt"

	"github.com/tasklink/tasklink/core"
)

// Key prefixes for different data types
const (
	chunkPrefix = "chunk"
)

// makeChunkKey generates a key for a chunk record.
// Format: prefix:ownerID:chunkID
func makeChunkKey(ownerID string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", chunkPrefix, ownerID, id))
}

// makeOwnerPrefix generates the key prefix covering all chunks of an owner.
func makeOwnerPrefix(ownerID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkPrefix, ownerID))
}

// makeScanPrefix generates the key prefix covering all chunk records.
func makeScanPrefix() []byte {
	return []byte(chunkPrefix + ":")
}
