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

package core

import (
	"fmt"
	"strings"
)

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - OwnerID must not be empty
//   - Text must not be empty
//
// NOT validated:
//   - Vector (can be empty until the embedder runs)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.OwnerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyOwnerID)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	return nil
}

// ValidateCandidate validates a SearchCandidate at the vector index boundary.
// Candidates missing an owner or text are malformed index output and must be
// rejected before they reach the ranking stages.
func ValidateCandidate(candidate *SearchCandidate) error {
	if candidate == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if candidate.OwnerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyOwnerID)
	}

	if candidate.ChunkText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyText)
	}

	return nil
}

// ValidateService validates a Service according to domain rules.
func ValidateService(service *Service) error {
	if service == nil {
		return fmt.Errorf("%w: service is nil", ErrInvalidService)
	}

	if strings.TrimSpace(service.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidService, ErrEmptyServiceName)
	}

	return nil
}

// NormalizeServiceName converts a service name to its canonical stored form.
// All catalog lookups compare canonical names.
func NormalizeServiceName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
