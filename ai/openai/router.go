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
	"context"
	"log/slog"
	"strings"

	"github.com/tasklink/tasklink/ai"
	"github.com/tmc/langchaingo/llms"
)

// Router implements ai.QueryRouter using OpenAI-compatible chat APIs.
type Router struct {
	client llms.Model
	logger *slog.Logger
}

// newRouter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRouter(client llms.Model) *Router {
	return &Router{
		client: client,
		logger: slog.Default().With("component", "openai-router"),
	}
}

// RouteQuery asks the model to pick the single best service for the query.
// The raw lowercase answer is returned; callers validate it against the
// known-service set and degrade to ai.RouteAll on a mismatch.
func (r *Router) RouteQuery(ctx context.Context, query string, knownServices []string) (string, error) {
	if len(knownServices) == 0 {
		return ai.RouteAll, nil
	}

	prompt := buildRoutingPrompt(query, knownServices, ai.RouteAll)
	answer, err := generateText(ctx, r.client, routingSystemPrompt, prompt, llms.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("routing call failed", "err", err)
		return "", err
	}

	choice := strings.ToLower(strings.Trim(answer, " \t\n'\"."))
	r.logger.Debug("routed query", "query", query, "choice", choice)
	return choice, nil
}
