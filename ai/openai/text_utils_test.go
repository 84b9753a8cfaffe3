package openai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateSnippet(t *testing.T) {
	short := "a short profile"
	assert.Equal(t, short, truncateSnippet(short))

	long := strings.Repeat("word ", 1000)
	truncated := truncateSnippet(long)
	assert.LessOrEqual(t, len(truncated), snippetLimit)
	assert.False(t, strings.HasSuffix(truncated, " "), "truncation lands on a word boundary")
}

func TestSplitLines(t *testing.T) {
	content := "first sub-query\n\n  second sub-query  \nthird sub-query\n"
	assert.Equal(t,
		[]string{"first sub-query", "second sub-query", "third sub-query"},
		splitLines(content))

	assert.Empty(t, splitLines("   \n  \n"))
}

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t,
		[]string{"plumber", "gas fitter", "heating engineer"},
		splitCommaList("Plumber, Gas Fitter , heating engineer,"))

	assert.Empty(t, splitCommaList(" , ,"))
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripCodeFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripCodeFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripCodeFences(`{"a": 1}`))
}
