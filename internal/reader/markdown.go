package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// MarkdownFormat implements Format for Markdown files. Each top-level
// section becomes a chapter and is rendered to HTML before extraction.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

func (f *MarkdownFormat) Open(filename string, _ OpenOptions) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		sections []Chapter
		current  = Chapter{ID: "preamble"}
		body     strings.Builder
	)
	flush := func() error {
		if strings.TrimSpace(body.String()) == "" {
			body.Reset()
			return nil
		}
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(body.String()), &buf); err != nil {
			return fmt.Errorf("render section %q: %w", current.ID, err)
		}
		current.Markup = buf.String()
		sections = append(sections, current)
		body.Reset()
		return nil
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if match := headerRegex.FindStringSubmatch(line); match != nil && len(match[1]) <= 2 {
			if err := flush(); err != nil {
				return nil, err
			}
			title := strings.TrimSpace(match[2])
			current = Chapter{ID: fmt.Sprintf("section-%d", len(sections)+1), Title: title}
		}

		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		return nil, ErrNoContent
	}

	return &Book{Path: filename, Chapters: sections}, nil
}
