package chunking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentenceOfWords builds a sentence with exactly n words ending in a period.
func sentenceOfWords(n, seed int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d_%d", seed, i)
	}
	return strings.Join(words, " ") + "."
}

func TestCollect_RespectsWordBudget(t *testing.T) {
	// Eight 50-word sentences: each chunk holds at most three of them.
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteString(sentenceOfWords(50, i))
		b.WriteString(" ")
	}

	chunks := Collect(b.String(), 150)
	require.NotEmpty(t, chunks)

	total := 0
	for _, chunk := range chunks {
		words := len(strings.Fields(chunk))
		assert.LessOrEqual(t, words, 150, "chunk exceeds word budget: %q", chunk)
		total += words
	}
	assert.Equal(t, 400, total, "no words lost or duplicated")
	assert.Len(t, chunks, 3)
}

func TestCollect_OversizedSentenceKeptWhole(t *testing.T) {
	// A single sentence longer than the budget cannot be split further.
	chunks := Collect(sentenceOfWords(200, 0), 150)
	require.Len(t, chunks, 1)
	assert.Equal(t, 200, len(strings.Fields(chunks[0])))
}

func TestCollect_DropsTinyChunks(t *testing.T) {
	assert.Empty(t, Collect("Too short.", 150))
	assert.Empty(t, Collect("ok", 150))
}

func TestCollect_EmptyAndWhitespaceInput(t *testing.T) {
	assert.Empty(t, Collect("", 150))
	assert.Empty(t, Collect("   \n\t  ", 150))
}

func TestCollect_NormalizesWhitespace(t *testing.T) {
	text := "The  plumber\nfixes   boilers\tand water heaters reliably."
	chunks := Collect(text, 150)
	require.Len(t, chunks, 1)
	assert.Equal(t, "The plumber fixes boilers and water heaters reliably.", chunks[0])
}

func TestCollect_DefaultBudgetWhenNonPositive(t *testing.T) {
	text := sentenceOfWords(40, 1) + " " + sentenceOfWords(40, 2)
	assert.Equal(t, Collect(text, DefaultMaxWords), Collect(text, 0))
}

func TestChunks_SequenceIsRestartable(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteString(sentenceOfWords(30, i))
		b.WriteString(" ")
	}
	seq := Chunks(b.String(), 60)

	var first []string
	for chunk := range seq {
		first = append(first, chunk)
		break
	}
	require.Len(t, first, 1)

	var all []string
	for chunk := range seq {
		all = append(all, chunk)
	}
	require.NotEmpty(t, all)
	assert.Equal(t, first[0], all[0], "restarting yields the same sequence")
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic sentences",
			text: "First one. Second one! Third one?",
			want: []string{"First one.", "Second one!", "Third one?"},
		},
		{
			name: "terminator runs stay attached",
			text: "Wait... Really?! Yes.",
			want: []string{"Wait...", "Really?!", "Yes."},
		},
		{
			name: "decimal points do not split",
			text: "Rated 4.5 stars by customers. Highly recommended.",
			want: []string{"Rated 4.5 stars by customers.", "Highly recommended."},
		},
		{
			name: "trailing text without terminator",
			text: "Complete sentence. trailing fragment",
			want: []string{"Complete sentence.", "trailing fragment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}
