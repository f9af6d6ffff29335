package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var border = lipgloss.NormalBorder()

// PageLines returns the buffer lines visible at the current scroll.
func (s Session) PageLines() []string {
	lines := s.doc.Lines
	start := min(s.Scroll, len(lines))
	end := min(start+s.opts.PageHeight, len(lines))
	return lines[start:end]
}

// Box frames the visible lines in a single-line border with one space of
// padding on each side.
func (s Session) Box() string {
	w := s.opts.PageWidth

	var sb strings.Builder
	sb.WriteString(border.TopLeft + strings.Repeat(border.Top, w+2) + border.TopRight + "\n")
	for _, line := range s.PageLines() {
		sb.WriteString(border.Left + " " + runewidth.FillRight(line, w) + " " + border.Right + "\n")
	}
	sb.WriteString(border.BottomLeft + strings.Repeat(border.Bottom, w+2) + border.BottomRight)
	return sb.String()
}

// ChapterStatus describes the current chapter. It is empty when the book
// has no chapter markers.
func (s Session) ChapterStatus() string {
	m, ok := s.Marker()
	if !ok {
		return ""
	}
	return fmt.Sprintf("Chapter %d (Line %d of %d, Chapter %d of %d)",
		m.Chapter, m.Line+1, s.TotalLines(), s.Chapter+1, len(s.doc.Markers))
}

// PageStatus describes the current page and line.
func (s Session) PageStatus() string {
	return fmt.Sprintf("Page %d / %d (Line %d of %d)",
		s.Page()+1, s.TotalPages(), s.Scroll+1, s.TotalLines())
}

// Render draws the page box followed by the status lines.
func (s Session) Render() string {
	var sb strings.Builder
	sb.WriteString(s.Box())
	sb.WriteString("\n")
	if status := s.ChapterStatus(); status != "" {
		sb.WriteString("\n" + status + "\n")
	}
	sb.WriteString("\n" + s.PageStatus() + "\n")
	return sb.String()
}
