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

// Package storage provides the storage abstraction layer for tasklink.
//
// Two stores back the retrieval pipeline:
//
//   - VectorIndex: owner-scoped chunk embeddings with approximate
//     nearest-neighbor search (storage/badger)
//   - Catalog: the relational "who offers what" graph of services and
//     supplier-service links (storage/sqlite)
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and
// enable alternative backends:
//
//	index, err := badger.NewVectorIndex(path)   // returns storage.VectorIndex
//	catalog, err := sqlite.NewCatalog(dbPath)   // returns storage.Catalog
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines. VectorIndex implementations must additionally
// guarantee that a concurrent search never observes a partially applied
// ReplaceChunks: readers see either the old or the new chunk set for an
// owner, never a mix.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
