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

package openai

import (
	"log/slog"

	"github.com/tasklink/tasklink/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// Chat-based capabilities share one underlying client; they are nil when
// the config has no chat host.
type Provider struct {
	config     *ai.Config
	embedder   *Embedder
	router     *Router
	rewriter   *Rewriter
	tagger     *Tagger
	summarizer *Summarizer
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns the ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		config:   config,
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-provider"),
	}

	if config.ChatConfigured() {
		client, err := newChatClient(config)
		if err != nil {
			return nil, err
		}
		p.router = newRouter(client)
		p.rewriter = newRewriter(client, config.ExpansionCount)
		p.tagger = newTagger(client, config.MaxRoles, config.MaxSkills)
		p.summarizer = newSummarizer(client, StrategyJSON)
	}

	return p, nil
}

// newChatClient creates the shared OpenAI chat client.
// Use "none" as token for local OpenAI-compatible services that don't
// require authentication.
func newChatClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Router returns the query routing service, or nil without a chat model.
func (p *Provider) Router() ai.QueryRouter {
	if p.router == nil {
		return nil
	}
	return p.router
}

// Rewriter returns the query rewriting service, or nil without a chat model.
func (p *Provider) Rewriter() ai.QueryRewriter {
	if p.rewriter == nil {
		return nil
	}
	return p.rewriter
}

// Tagger returns the profile tagging service, or nil without a chat model.
func (p *Provider) Tagger() ai.ProfileTagger {
	if p.tagger == nil {
		return nil
	}
	return p.tagger
}

// Summarizer returns the structured summarization service, or nil without
// a chat model.
func (p *Provider) Summarizer() ai.Summarizer {
	if p.summarizer == nil {
		return nil
	}
	return p.summarizer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
