// Copyright 2025 Tasklink Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/tasklink/tasklink/core"
)

// vectorSer serializes embedding vectors as length-prefixed raw float32s.
var vectorSer = ord.NewSliceSer[float32](raw.Float32)

// MarshalChunk serializes a Chunk to bytes in MUS format.
// Field order: OwnerID, Text, Vector.
func MarshalChunk(chunk *core.Chunk) []byte {
	size := ord.String.Size(chunk.OwnerID) +
		ord.String.Size(chunk.Text) +
		vectorSer.Size(chunk.Vector)

	bs := make([]byte, size)
	n := ord.String.Marshal(chunk.OwnerID, bs)
	n += ord.String.Marshal(chunk.Text, bs[n:])
	vectorSer.Marshal(chunk.Vector, bs[n:])
	return bs
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	ownerID, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: owner id: %w", ErrSerializationFailed, err)
	}

	text, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: text: %w", ErrSerializationFailed, err)
	}
	n += m

	vector, _, err := vectorSer.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}

	return &core.Chunk{
		OwnerID: ownerID,
		Text:    text,
		Vector:  vector,
	}, nil
}
