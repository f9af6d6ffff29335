package pager

import "github.com/metcalfc/folio/internal/reader"

// Document is the immutable input of a reading session: the flattened line
// buffer and the chapter markers found in it. Sections are the titled
// chapters of the source book, when it has any.
type Document struct {
	Lines    []string
	Markers  []reader.Marker
	Rules    reader.HeadingRules
	Sections []reader.Section
}

// NewDocument indexes the chapters of lines.
func NewDocument(lines []string, rules reader.HeadingRules) *Document {
	return &Document{
		Lines:   lines,
		Markers: reader.FindChapters(lines, rules),
		Rules:   rules,
	}
}

// WithSections attaches the book's titled chapters to d.
func (d *Document) WithSections(sections []reader.Section) *Document {
	d.Sections = sections
	return d
}

// plausible reports whether marker k is a chapter jump target.
func (d *Document) plausible(k int) bool {
	return reader.Plausible(d.Lines, d.Markers, k, d.Rules)
}

// chapterHolds reports whether scroll lies inside chapter k.
func (d *Document) chapterHolds(k, scroll int) bool {
	if k < 0 || k >= len(d.Markers) || d.Markers[k].Line > scroll {
		return false
	}
	return k+1 == len(d.Markers) || scroll < d.Markers[k+1].Line
}
