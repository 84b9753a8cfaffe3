package openai

import "strings"

// snippetLimit caps the profile text sent to tagging and summary prompts.
const snippetLimit = 3000

// truncateSnippet bounds text to snippetLimit bytes without splitting words.
func truncateSnippet(text string) string {
	if len(text) <= snippetLimit {
		return text
	}
	cut := text[:snippetLimit]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}

// splitLines parses newline-separated model output into trimmed, non-empty
// entries.
func splitLines(content string) []string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

// splitCommaList parses comma-separated model output into trimmed, lowercase,
// non-empty entries.
func splitCommaList(content string) []string {
	parts := strings.Split(content, ",")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

// stripCodeFences removes a wrapping markdown code fence if present.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
