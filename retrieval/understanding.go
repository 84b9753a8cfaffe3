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

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tasklink/tasklink/ai"
)

// OutcomeStatus tells how an optional understanding step concluded.
type OutcomeStatus int

const (
	// OutcomeApplied means the capability ran and its value is in effect.
	OutcomeApplied OutcomeStatus = iota + 1

	// OutcomeUnavailable means the capability is not configured; the value
	// is the identity fallback.
	OutcomeUnavailable

	// OutcomeFailed means the capability ran and errored; the value is the
	// identity fallback and Err holds the cause.
	OutcomeFailed
)

// Outcome carries the result of an optional understanding step. Value is
// always usable: on Unavailable or Failed it holds the fallback that keeps
// the pipeline going.
type Outcome[T any] struct {
	Value  T
	Status OutcomeStatus
	Err    error
}

func applied[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value, Status: OutcomeApplied}
}

func unavailable[T any](fallback T) Outcome[T] {
	return Outcome[T]{Value: fallback, Status: OutcomeUnavailable}
}

func failed[T any](fallback T, err error) Outcome[T] {
	return Outcome[T]{Value: fallback, Status: OutcomeFailed, Err: err}
}

// understanding wraps the optional query-understanding capabilities with
// per-call timeouts and identity fallbacks.
type understanding struct {
	provider ai.Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// Route maps the query onto one of knownServices. The fallback on every
// degraded path is ai.RouteAll. A model reply outside the known set also
// collapses to ai.RouteAll; the model is untrusted input here.
func (u *understanding) Route(ctx context.Context, query string, knownServices []string) Outcome[string] {
	router := u.provider.Router()
	if router == nil {
		return unavailable(ai.RouteAll)
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	service, err := router.RouteQuery(ctx, query, knownServices)
	if err != nil {
		u.logger.Warn("query routing failed", "err", err)
		return failed(ai.RouteAll, err)
	}

	service = strings.ToLower(strings.TrimSpace(service))
	if service == ai.RouteAll {
		return applied(ai.RouteAll)
	}
	for _, known := range knownServices {
		if strings.EqualFold(known, service) {
			return applied(strings.ToLower(known))
		}
	}

	u.logger.Warn("router returned unknown service", "service", service)
	return applied(ai.RouteAll)
}

// Decompose breaks the query into sub-queries; the fallback is the query
// itself as the sole sub-query.
func (u *understanding) Decompose(ctx context.Context, query string) Outcome[[]string] {
	rewriter := u.provider.Rewriter()
	if rewriter == nil {
		return unavailable([]string{query})
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	subQueries, err := rewriter.Decompose(ctx, query)
	if err != nil {
		u.logger.Warn("query decomposition failed", "err", err)
		return failed([]string{query}, err)
	}
	if len(subQueries) == 0 {
		subQueries = []string{query}
	}
	return applied(subQueries)
}

// Expand paraphrases the query into n variants; the fallback is no variants.
func (u *understanding) Expand(ctx context.Context, query string, n int) Outcome[[]string] {
	rewriter := u.provider.Rewriter()
	if rewriter == nil {
		return unavailable[[]string](nil)
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	variants, err := rewriter.Expand(ctx, query, n)
	if err != nil {
		u.logger.Warn("query expansion failed", "err", err)
		return failed[[]string](nil, err)
	}
	return applied(variants)
}
