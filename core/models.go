package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content hashing.
// It is used to key chunk records in the vector index.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a bounded piece of a supplier document together with its
// embedding vector. Chunks are immutable once stored; re-ingesting a
// document replaces all chunks for the owner.
type Chunk struct {
	OwnerID string
	Text    string
	Vector  []float32
}

// Service is an entry in the service taxonomy (e.g. "plumber").
// Names are unique under case-insensitive comparison and stored lowercase.
type Service struct {
	ID          string
	Name        string
	Description string
}

// SupplierLink associates a supplier with a service they offer.
// The (SupplierID, ServiceID) pair is unique; re-linking is a no-op.
type SupplierLink struct {
	SupplierID string
	ServiceID  string
}

// SearchCandidate is a single vector-search hit. Candidates are transient
// pipeline values and are never persisted.
type SearchCandidate struct {
	OwnerID   string
	ChunkText string
	Score     float32
}

// RankedResult is a final orchestrator output entry. Summary is populated
// only when structured summarization is requested.
type RankedResult struct {
	OwnerID   string
	ChunkText string
	Score     float32
	Summary   *StructuredSummary
}

// StructuredSummary is an LLM-authored explanation of why a candidate
// matches a query.
type StructuredSummary struct {
	CandidateName string   `json:"candidate_name"`
	KeyStrengths  []string `json:"key_strengths"`
	Reasoning     string   `json:"reasoning"`
}

// EmptySummary returns the fixed summary value used when no candidate
// documents are available.
func EmptySummary() *StructuredSummary {
	return &StructuredSummary{
		CandidateName: "",
		KeyStrengths:  []string{},
		Reasoning:     "No documents found.",
	}
}
