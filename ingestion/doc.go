// Package ingestion turns supplier documents into indexed, searchable
// profiles. A Pipeline extracts text, chunks and embeds it, replaces the
// owner's chunks in the vector index, and enriches the supplier's catalog
// entry with detected roles.
package ingestion
