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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidCandidate indicates a SearchCandidate failed validation.
	ErrInvalidCandidate = errors.New("invalid search candidate")

	// ErrInvalidService indicates a Service failed validation.
	ErrInvalidService = errors.New("invalid service")

	// ErrEmptyOwnerID indicates the OwnerID field is empty.
	ErrEmptyOwnerID = errors.New("owner id cannot be empty")

	// ErrEmptyText indicates the chunk text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyServiceName indicates the service Name field is empty.
	ErrEmptyServiceName = errors.New("service name cannot be empty")
)
