// Package pager paginates a line buffer and drives chapter-aware navigation
// over it.
package pager

import (
	"github.com/metcalfc/folio/internal/reader"
	"github.com/metcalfc/folio/internal/state"
)

// Defaults for Options.
const (
	DefaultPageWidth  = reader.DefaultPageWidth
	DefaultPageHeight = 20
	// DefaultPrevChapterMinIndex disables prev-chapter while the current
	// chapter index is below it.
	DefaultPrevChapterMinIndex = 2
)

// Options fixes the page geometry and navigation rules of a session.
type Options struct {
	PageWidth           int
	PageHeight          int
	PrevChapterMinIndex int
}

// DefaultOptions returns the standard 80x20 layout.
func DefaultOptions() Options {
	return Options{
		PageWidth:           DefaultPageWidth,
		PageHeight:          DefaultPageHeight,
		PrevChapterMinIndex: DefaultPrevChapterMinIndex,
	}
}

// Session is the reading state. It is a value: Apply returns the next
// state and leaves the receiver untouched.
type Session struct {
	Scroll  int
	Chapter int
	Last    Command

	doc  *Document
	opts Options
}

// NewSession starts a session at the top of doc.
func NewSession(doc *Document, opts Options) Session {
	if opts.PageHeight < 1 {
		opts.PageHeight = 1
	}
	return Session{doc: doc, opts: opts}
}

// Document returns the document being read.
func (s Session) Document() *Document { return s.doc }

// Options returns the session geometry.
func (s Session) Options() Options { return s.opts }

// TotalLines is the length of the line buffer.
func (s Session) TotalLines() int { return len(s.doc.Lines) }

// MaxScroll is the largest scroll that still fills a page.
func (s Session) MaxScroll() int {
	return max(0, s.TotalLines()-s.opts.PageHeight)
}

// TotalPages is ceil(lines / pageHeight).
func (s Session) TotalPages() int {
	h := s.opts.PageHeight
	return (s.TotalLines() + h - 1) / h
}

// Page is the zero-based page holding the top line.
func (s Session) Page() int {
	return s.Scroll / s.opts.PageHeight
}

// Done reports whether the session has been quit.
func (s Session) Done() bool { return s.Last == Quit }

// Marker returns the current chapter marker, if any.
func (s Session) Marker() (reader.Marker, bool) {
	if s.Chapter < 0 || s.Chapter >= len(s.doc.Markers) {
		return reader.Marker{}, false
	}
	return s.doc.Markers[s.Chapter], true
}

// SectionTitle is the title of the book chapter holding the top line, or ""
// when the book gave none.
func (s Session) SectionTitle() string {
	return reader.SectionAt(s.doc.Sections, s.Scroll)
}

// Legal returns the commands that can change the state, in menu order.
// Quit is always last.
func (s Session) Legal() []Command {
	var cmds []Command
	for _, c := range Commands {
		if s.Allowed(c) {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// Allowed reports whether c is offered in the current state.
func (s Session) Allowed(c Command) bool {
	switch c {
	case ScrollUp:
		return s.Scroll > 0
	case ScrollDown:
		return s.Scroll < s.MaxScroll()
	case PrevPage:
		return s.Page() > 0
	case NextPage:
		return s.Page() < s.TotalPages()-1
	case PrevChapter:
		return s.Chapter > 0 && s.Chapter >= s.opts.PrevChapterMinIndex && len(s.doc.Markers) > 0
	case NextChapter:
		return s.Chapter < len(s.doc.Markers)-1
	case Quit:
		return true
	}
	return false
}

// Apply returns the state after c. Commands that are not allowed leave the
// position unchanged.
func (s Session) Apply(c Command) Session {
	next := s
	next.Last = c

	if !s.Allowed(c) {
		return next
	}

	h := s.opts.PageHeight
	switch c {
	case ScrollUp:
		return next.scrollTo(s.Scroll - 1)
	case ScrollDown:
		return next.scrollTo(s.Scroll + 1)
	case PrevPage:
		return next.scrollTo(s.Scroll - h)
	case NextPage:
		return next.scrollTo(s.Scroll + h)
	case PrevChapter:
		for k := s.Chapter - 1; k >= 0; k-- {
			if s.doc.plausible(k) {
				return next.scrollTo(s.doc.Markers[k].Line)
			}
		}
	case NextChapter:
		for k := s.Chapter + 1; k < len(s.doc.Markers); k++ {
			if s.doc.plausible(k) {
				return next.scrollTo(s.doc.Markers[k].Line)
			}
		}
	}
	return next
}

// scrollTo clamps line into [0, MaxScroll] and re-derives the chapter.
func (s Session) scrollTo(line int) Session {
	s.Scroll = min(max(line, 0), s.MaxScroll())
	s.Chapter = reader.ResolveChapter(s.doc.Markers, s.Scroll)
	return s
}

// Restore moves the session to a saved position. A stored chapter index is
// kept only when it agrees with the scroll, that is when its marker is at or
// above the scroll and the next marker is below it. Otherwise the chapter is
// resolved from the scroll.
func (s Session) Restore(pos state.Position) Session {
	s = s.scrollTo(pos.Scroll)
	if pos.Chapter != nil && s.doc.chapterHolds(*pos.Chapter, s.Scroll) {
		s.Chapter = *pos.Chapter
	}
	return s
}
