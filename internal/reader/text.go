package reader

import (
	"html"
	"os"
	"strings"
)

// TextFormat implements Format for plain text files. The whole file is a
// single chapter.
type TextFormat struct{}

func init() {
	Register(&TextFormat{})
}

func (f *TextFormat) Name() string         { return "Text" }
func (f *TextFormat) Extensions() []string { return []string{".txt"} }

func (f *TextFormat) Open(filename string, _ OpenOptions) (*Book, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrNoContent
	}

	// Escaped so stray angle brackets survive markup stripping.
	return &Book{
		Path: filename,
		Chapters: []Chapter{
			{ID: "text", Markup: html.EscapeString(string(data))},
		},
	}, nil
}
