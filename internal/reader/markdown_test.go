package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownOpen(t *testing.T) {
	content := `Front matter text.

# Chapter 1

Some *emphasis* and a [link](http://example.com).

## Chapter 2

- first item
- second item

### Not a split

Closing words.
`
	path := filepath.Join(t.TempDir(), "book.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	book, err := Open(path, OpenOptions{})
	require.NoError(t, err)

	require.Len(t, book.Chapters, 3)
	assert.Equal(t, "preamble", book.Chapters[0].ID)
	assert.Equal(t, "Chapter 1", book.Chapters[1].Title)
	assert.Equal(t, "Chapter 2", book.Chapters[2].Title)

	lines := Lines(book, 80)
	assert.Equal(t, []string{
		"Front matter text.",
		"",
		"Chapter 1",
		"",
		"Some emphasis and a link.",
		"",
		"Chapter 2",
		"",
		"first item",
		"",
		"second item",
		"",
		"Not a split",
		"",
		"Closing words.",
	}, lines)
}

func TestMarkdownOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := Open(path, OpenOptions{})
	assert.ErrorIs(t, err, ErrNoContent)
}
