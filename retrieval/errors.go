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

package retrieval

import "errors"

var (
	// ErrEmptyQuery is returned when a search is attempted with no query text.
	ErrEmptyQuery = errors.New("query text is required")

	// ErrInvalidTopK is returned when the requested result count is not positive.
	ErrInvalidTopK = errors.New("top-k must be positive")

	// ErrIndexRequired is returned when an orchestrator is built without a vector index.
	ErrIndexRequired = errors.New("vector index is required")

	// ErrCatalogRequired is returned when an orchestrator is built without a catalog.
	ErrCatalogRequired = errors.New("catalog is required")

	// ErrEmbedderRequired is returned when an orchestrator is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
