package pager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/folio/internal/reader"
	"github.com/metcalfc/folio/internal/state"
)

func TestBox(t *testing.T) {
	opts := Options{PageWidth: 6, PageHeight: 2, PrevChapterMinIndex: 2}
	s := NewSession(NewDocument([]string{"ab", "cdef", "gh"}, reader.DefaultHeadingRules()), opts)

	want := strings.Join([]string{
		"┌────────┐",
		"│ ab     │",
		"│ cdef   │",
		"└────────┘",
	}, "\n")
	assert.Equal(t, want, s.Box())

	s = s.Apply(ScrollDown)
	assert.Contains(t, s.Box(), "│ gh     │")
}

func TestBoxPartialPage(t *testing.T) {
	opts := Options{PageWidth: 4, PageHeight: 5}
	s := NewSession(NewDocument([]string{"one"}, reader.DefaultHeadingRules()), opts)

	lines := strings.Split(s.Box(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "│ one  │", lines[1])
}

func TestRenderStatus(t *testing.T) {
	s := newTestSession(chapterBook(), 20)
	s = s.Restore(state.Position{Scroll: 130})

	out := s.Render()
	assert.Contains(t, out, "\nChapter 4 (Line 121 of 200, Chapter 4 of 4)\n")
	assert.True(t, strings.HasSuffix(out, "\nPage 7 / 10 (Line 131 of 200)\n"))
}

func TestRenderWithoutChapters(t *testing.T) {
	s := newTestSession(numbered(30), 20)

	out := s.Render()
	assert.NotContains(t, out, "Chapter")
	assert.Contains(t, out, "Page 1 / 2 (Line 1 of 30)")
}
