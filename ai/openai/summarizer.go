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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tasklink/tasklink/core"
	"github.com/tmc/langchaingo/llms"
)

// SummaryStrategy selects how structured summaries are requested from the model.
type SummaryStrategy int

const (
	// StrategyJSON asks for free-text constrained to a JSON shape and
	// parses the answer.
	StrategyJSON SummaryStrategy = iota + 1

	// StrategyFunctionCall uses a schema-constrained tool call.
	StrategyFunctionCall
)

// errNoToolCall indicates the model answered without the requested tool call.
var errNoToolCall = errors.New("model returned no tool call")

// recommendCandidateTool is the schema for the function-call strategy.
var recommendCandidateTool = llms.Tool{
	Type: "function",
	Function: &llms.FunctionDefinition{
		Name:        "recommend_candidate",
		Description: "Return structured info about candidate",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"candidate_name": map[string]any{"type": "string"},
				"key_strengths": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"reasoning": map[string]any{"type": "string"},
			},
			"required": []string{"candidate_name", "key_strengths", "reasoning"},
		},
	},
}

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client   llms.Model
	strategy SummaryStrategy
	logger   *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(client llms.Model, strategy SummaryStrategy) *Summarizer {
	if strategy != StrategyJSON && strategy != StrategyFunctionCall {
		strategy = StrategyJSON
	}
	return &Summarizer{
		client:   client,
		strategy: strategy,
		logger:   slog.Default().With("component", "openai-summarizer"),
	}
}

// StructuredSummary explains why the candidate documents match the query.
// With no documents it returns the fixed empty-summary value without
// calling the model. Malformed model output is reported as an error with a
// nil summary; it is never raised as a panic.
func (s *Summarizer) StructuredSummary(ctx context.Context, query string, docs []core.SearchCandidate) (*core.StructuredSummary, error) {
	if len(docs) == 0 {
		return core.EmptySummary(), nil
	}

	switch s.strategy {
	case StrategyFunctionCall:
		return s.summarizeWithTool(ctx, query, docs)
	default:
		return s.summarizeWithJSON(ctx, query, docs)
	}
}

// summarizeWithJSON requests plain text shaped as JSON and parses it.
func (s *Summarizer) summarizeWithJSON(ctx context.Context, query string, docs []core.SearchCandidate) (*core.StructuredSummary, error) {
	prompt := buildSummaryPrompt(query, docs) + "\n" + summaryJSONInstructions

	answer, err := generateText(ctx, s.client, "", prompt, llms.WithTemperature(0.7))
	if err != nil {
		s.logger.Error("summary call failed", "err", err)
		return nil, err
	}

	return s.parseSummary(answer)
}

// summarizeWithTool requests a schema-constrained tool call.
func (s *Summarizer) summarizeWithTool(ctx context.Context, query string, docs []core.SearchCandidate) (*core.StructuredSummary, error) {
	prompt := buildSummaryPrompt(query, docs)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart("You are a helpful assistant."),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content,
		llms.WithTools([]llms.Tool{recommendCandidateTool}))
	if err != nil {
		s.logger.Error("summary tool call failed", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, errNoChoices
	}

	choice := response.Choices[0]
	var arguments string
	for _, call := range choice.ToolCalls {
		if call.FunctionCall != nil && call.FunctionCall.Name == recommendCandidateTool.Function.Name {
			arguments = call.FunctionCall.Arguments
			break
		}
	}
	if arguments == "" && choice.FuncCall != nil {
		arguments = choice.FuncCall.Arguments
	}
	if arguments == "" {
		s.logger.Warn("model answered without tool call", "content", choice.Content)
		return nil, errNoToolCall
	}

	return s.parseSummary(arguments)
}

// parseSummary decodes model output into a StructuredSummary, tolerating
// code fences and common JSON defects.
func (s *Summarizer) parseSummary(raw string) (*core.StructuredSummary, error) {
	cleaned := repairJSON(stripCodeFences(raw))

	var summary core.StructuredSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		s.logger.Warn("error parsing summary response", "response", cleaned, "err", err)
		return nil, fmt.Errorf("parse structured summary: %w", err)
	}
	if summary.KeyStrengths == nil {
		summary.KeyStrengths = []string{}
	}

	return &summary, nil
}
