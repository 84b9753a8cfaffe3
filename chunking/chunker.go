package chunking

import (
	"iter"
	"regexp"
	"strings"
)

const (
	// DefaultMaxWords is the default word budget per chunk.
	DefaultMaxWords = 150

	// MinChunkChars is the minimal chunk length in characters.
	// Shorter chunks carry too little signal to embed and are dropped.
	MinChunkChars = 30
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Chunks returns a lazy, restartable sequence of text chunks of at most
// maxWords words each. Text with nothing extractable yields an empty
// sequence, not an error. If maxWords is not positive, DefaultMaxWords
// is used.
func Chunks(text string, maxWords int) iter.Seq[string] {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	return func(yield func(string) bool) {
		normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
		if normalized == "" {
			return
		}

		var current []string
		currentWords := 0

		emit := func() bool {
			chunk := strings.Join(current, " ")
			if len(chunk) <= MinChunkChars {
				return true
			}
			return yield(chunk)
		}

		for _, sentence := range splitSentences(normalized) {
			wordCount := len(strings.Fields(sentence))
			if currentWords+wordCount > maxWords && len(current) > 0 {
				if !emit() {
					return
				}
				current = []string{sentence}
				currentWords = wordCount
			} else {
				current = append(current, sentence)
				currentWords += wordCount
			}
		}

		if len(current) > 0 {
			emit()
		}
	}
}

// Collect materializes the chunk sequence for text into a slice.
func Collect(text string, maxWords int) []string {
	var chunks []string
	for chunk := range Chunks(text, maxWords) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitSentences splits normalized text on terminal punctuation.
// The terminator stays attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		if text[i] != '.' && text[i] != '!' && text[i] != '?' {
			continue
		}
		// Consume runs of terminators ("..." or "?!").
		end := i + 1
		for end < len(text) && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
			end++
		}
		if end < len(text) && text[end] != ' ' {
			i = end - 1
			continue
		}
		sentence := strings.TrimSpace(text[start:end])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
		i = end - 1
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}
