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

// Package ai provides abstractions for the AI services used by tasklink.
//
// This package defines interfaces for text embeddings, query routing,
// query rewriting (decomposition and expansion), supplier profile tagging,
// and structured summarization. Business logic depends on these
// abstractions rather than on concrete implementations.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Optional Capabilities
//
// The chat-based capabilities (routing, rewriting, tagging, summarization)
// are optional: a Provider built from a Config without a chat model returns
// nil from the corresponding accessors. Callers must treat a nil capability
// as "unavailable" and apply their documented fallback; only the Embedder
// is mandatory.
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("embeddinggemma"),
//	    ai.WithChatModel("qwen2.5:3b"),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "licensed plumber, 10 years")
package ai
