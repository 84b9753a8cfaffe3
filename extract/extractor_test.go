package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.txt")
	content := "Experienced carpenter building fitted wardrobes and staircases."
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	pages, err := Pages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, content, pages[0])
}

func TestPages_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.md")
	require.NoError(t, os.WriteFile(path, []byte("# About\nSome profile text."), 0644))

	pages, err := Pages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
}

func TestPages_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	pages, err := Pages(path)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPages_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.docx")
	require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0644))

	_, err := Pages(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPages_MissingFile(t *testing.T) {
	_, err := Pages(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPages_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

	_, err := Pages(path)
	assert.Error(t, err)
}
