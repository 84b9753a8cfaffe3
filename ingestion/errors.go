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

package ingestion

import "errors"

var (
	// ErrEmptyOwnerID is returned when a document is ingested without an owner.
	ErrEmptyOwnerID = errors.New("owner id is required")

	// ErrIndexRequired is returned when a pipeline is built without a vector index.
	ErrIndexRequired = errors.New("vector index is required")

	// ErrEmbedderRequired is returned when a pipeline is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
