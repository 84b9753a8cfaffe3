// Package chunking splits raw document text into bounded-size chunks that
// respect sentence boundaries.
//
// Sentences are accumulated into a running chunk until adding the next
// sentence would exceed the word budget, at which point the chunk is closed
// and a new one starts with that sentence. Chunks shorter than a minimal
// character threshold are discarded as noise.
package chunking
