// Package reader turns book files into a flat, word-wrapped line buffer and
// locates chapter headings within it.
package reader

import "errors"

var (
	// ErrNoContent is returned when a book yields no readable chapters.
	ErrNoContent = errors.New("book has no readable content")
)

// Chapter is one unit of raw markup in reading order.
type Chapter struct {
	ID     string
	Title  string
	Markup string
}

// Book is the content handed over by a Format: an optional title and the
// chapters in spine order.
type Book struct {
	Path     string
	Title    string
	Chapters []Chapter
}

// OpenOptions controls how a Format treats chapters it cannot read.
type OpenOptions struct {
	// SkipBroken drops chapters whose content cannot be read instead of
	// failing the whole book.
	SkipBroken bool
}
