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

// Package tasklink matches customer task requests to suppliers. It wires a
// vector index over supplier documents, a relational service catalog, and
// an AI provider into an ingestion pipeline and a retrieval orchestrator.
package tasklink

import (
	"log/slog"

	"github.com/tasklink/tasklink/ai"
	"github.com/tasklink/tasklink/ai/openai"
	"github.com/tasklink/tasklink/ingestion"
	"github.com/tasklink/tasklink/retrieval"
	"github.com/tasklink/tasklink/storage"
	"github.com/tasklink/tasklink/storage/badger"
	"github.com/tasklink/tasklink/storage/sqlite"
)

// Database bundles the storage backends and AI provider behind one handle.
type Database struct {
	index    storage.VectorIndex
	catalog  storage.Catalog
	provider ai.Provider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing provider
// construction. The Database takes ownership and closes it.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens the vector index at indexPath and the service catalog
// at catalogPath.
func NewDatabase(indexPath, catalogPath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	index, err := badger.NewVectorIndex(indexPath)
	if err != nil {
		return nil, err
	}

	catalog, err := sqlite.NewCatalog(catalogPath)
	if err != nil {
		index.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			catalog.Close()
			index.Close()
			return nil, err
		}
	}

	return &Database{
		index:    index,
		catalog:  catalog,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.catalog.Close(); err != nil {
		db.logger.Error("error closing service catalog", "err", err)
		return err
	}
	if err := db.index.Close(); err != nil {
		db.logger.Error("error closing vector index", "err", err)
		return err
	}
	return nil
}

func (db *Database) VectorIndex() storage.VectorIndex {
	return db.index
}

func (db *Database) Catalog() storage.Catalog {
	return db.catalog
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.PipelineOption) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.index, db.catalog, db.provider, opts...)
}

func (db *Database) NewOrchestrator(opts ...retrieval.OrchestratorOption) (*retrieval.Orchestrator, error) {
	return retrieval.NewOrchestrator(db.index, db.catalog, db.provider, opts...)
}
