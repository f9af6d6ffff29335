package pager

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/folio/internal/reader"
	"github.com/metcalfc/folio/internal/state"
)

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func newTestSession(lines []string, height int) Session {
	opts := DefaultOptions()
	opts.PageHeight = height
	return NewSession(NewDocument(lines, reader.DefaultHeadingRules()), opts)
}

// chapterBook has markers at lines 10, 15, 16 and 120. Markers 15 and 16 are
// followed by another heading within ten lines; so is 10.
func chapterBook() []string {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "filler"
	}
	long := strings.Repeat("x", 120)

	lines[10] = "Chapter 1"
	lines[11] = long
	lines[15] = "Chapter 2"
	lines[16] = "Chapter 3"
	lines[17] = long
	lines[18] = "chapter 7" // too little text after it to be accepted
	lines[120] = "Chapter 4"
	lines[121] = long
	return lines
}

func TestDerivedValues(t *testing.T) {
	tests := []struct {
		lines, height         int
		maxScroll, totalPages int
	}{
		{1000, 20, 980, 50},
		{1001, 20, 981, 51},
		{5, 20, 0, 1},
		{0, 20, 0, 0},
		{20, 20, 0, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.lines, tt.height), func(t *testing.T) {
			s := newTestSession(numbered(tt.lines), tt.height)
			assert.Equal(t, tt.maxScroll, s.MaxScroll())
			assert.Equal(t, tt.totalPages, s.TotalPages())
		})
	}
}

func TestPagingThroughBook(t *testing.T) {
	s := newTestSession(numbered(1000), 20)

	assert.Equal(t, 0, s.Page())
	assert.Contains(t, s.PageStatus(), "Page 1 / 50")

	s = s.Apply(NextPage)
	assert.Equal(t, 20, s.Scroll)

	for s.Allowed(NextPage) {
		s = s.Apply(NextPage)
	}
	assert.Equal(t, 980, s.Scroll)
	assert.Equal(t, 49, s.Page())

	after := s.Apply(NextPage)
	assert.Equal(t, 980, after.Scroll, "next-page at the end is a no-op")
	assert.NotContains(t, s.Legal(), NextPage)
}

func TestScrollBounds(t *testing.T) {
	s := newTestSession(numbered(25), 20)

	assert.Equal(t, []Command{ScrollDown, NextPage, Quit}, s.Legal())

	s = s.Apply(ScrollUp)
	assert.Equal(t, 0, s.Scroll)

	for i := 0; i < 10; i++ {
		s = s.Apply(ScrollDown)
	}
	assert.Equal(t, 5, s.Scroll)
	assert.False(t, s.Allowed(ScrollDown))

	// page 0 of 2, so next-page is still offered and clamps to maxScroll
	s = s.Apply(NextPage)
	assert.Equal(t, 5, s.Scroll)

	s = s.Apply(ScrollUp)
	assert.Equal(t, 4, s.Scroll)
}

func TestPrevPageClamps(t *testing.T) {
	s := newTestSession(numbered(100), 20)
	s = s.Restore(state.Position{Scroll: 25})
	require.Equal(t, 1, s.Page())

	s = s.Apply(PrevPage)
	assert.Equal(t, 5, s.Scroll)
	assert.False(t, s.Allowed(PrevPage))

	s = s.Apply(PrevPage)
	assert.Equal(t, 5, s.Scroll)
}

func TestScrollAlwaysInRange(t *testing.T) {
	cmds := []Command{NextPage, NextPage, ScrollDown, NextChapter, NextPage, NextPage, PrevChapter, ScrollUp, PrevPage, NextChapter, NextChapter}

	for _, n := range []int{0, 1, 19, 20, 21, 200} {
		for _, h := range []int{1, 7, 20} {
			lines := numbered(n)
			if n == 200 {
				lines = chapterBook()
			}
			s := newTestSession(lines, h)
			for _, c := range cmds {
				s = s.Apply(c)
				require.GreaterOrEqual(t, s.Scroll, 0)
				require.LessOrEqual(t, s.Scroll, s.MaxScroll())
				require.Equal(t, reader.ResolveChapter(s.Document().Markers, s.Scroll), s.Chapter)
			}
		}
	}
}

func TestNextChapterSkipsImplausibleMarkers(t *testing.T) {
	s := newTestSession(chapterBook(), 20)

	markers := s.Document().Markers
	require.Equal(t, []int{10, 15, 16, 120}, markerLines(markers))

	s = s.Restore(state.Position{Scroll: 10})
	require.Equal(t, 0, s.Chapter)

	s = s.Apply(NextChapter)
	assert.Equal(t, 120, s.Scroll)
	assert.Equal(t, 3, s.Chapter)
	assert.Equal(t, s.Chapter, reader.ResolveChapter(markers, s.Scroll))
	assert.False(t, s.Allowed(NextChapter))
}

func TestNextChapterWithoutTargetIsNoop(t *testing.T) {
	lines := chapterBook()
	lines[120] = "filler"
	s := newTestSession(lines, 20)
	require.Equal(t, []int{10, 15, 16}, markerLines(s.Document().Markers))

	s = s.Restore(state.Position{Scroll: 10})
	require.True(t, s.Allowed(NextChapter))

	s = s.Apply(NextChapter)
	assert.Equal(t, 10, s.Scroll)
}

func TestPrevChapter(t *testing.T) {
	lines := make([]string, 300)
	for i := range lines {
		lines[i] = strings.Repeat("y", 30)
	}
	for i, at := range []int{0, 50, 100, 150} {
		lines[at] = fmt.Sprintf("Chapter %d", i+1)
	}
	s := newTestSession(lines, 20)
	require.Equal(t, []int{0, 50, 100, 150}, markerLines(s.Document().Markers))

	s = s.Restore(state.Position{Scroll: 160})
	require.Equal(t, 3, s.Chapter)

	s = s.Apply(PrevChapter)
	assert.Equal(t, 100, s.Scroll)
	assert.Equal(t, 2, s.Chapter)

	s = s.Apply(PrevChapter)
	assert.Equal(t, 50, s.Scroll)
	assert.Equal(t, 1, s.Chapter)

	assert.False(t, s.Allowed(PrevChapter), "prev-chapter is disabled below index 2")
	assert.Equal(t, 50, s.Apply(PrevChapter).Scroll)
}

func TestPrevChapterMinIndexConfigurable(t *testing.T) {
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = strings.Repeat("y", 30)
	}
	lines[0] = "Chapter 1"
	lines[50] = "Chapter 2"

	opts := DefaultOptions()
	opts.PrevChapterMinIndex = 1
	s := NewSession(NewDocument(lines, reader.DefaultHeadingRules()), opts)
	s = s.Restore(state.Position{Scroll: 60})
	require.Equal(t, 1, s.Chapter)

	require.True(t, s.Allowed(PrevChapter))
	assert.Equal(t, 0, s.Apply(PrevChapter).Scroll)
}

func TestPrevChapterWithoutPlausibleTargetIsNoop(t *testing.T) {
	s := newTestSession(chapterBook(), 20)
	s = s.Restore(state.Position{Scroll: 150})
	require.Equal(t, 3, s.Chapter)
	require.True(t, s.Allowed(PrevChapter))

	s = s.Apply(PrevChapter)
	assert.Equal(t, 150, s.Scroll)
	assert.Equal(t, PrevChapter, s.Last)
}

func TestChapterJumpClampsToMaxScroll(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = strings.Repeat("z", 30)
	}
	lines[0] = "Chapter 1"
	lines[35] = "Chapter 2"

	s := newTestSession(lines, 20)
	s = s.Apply(NextChapter)
	assert.Equal(t, 20, s.Scroll)
	assert.Equal(t, 0, s.Chapter)
}

func TestNoMarkers(t *testing.T) {
	s := newTestSession(numbered(100), 20)

	assert.NotContains(t, s.Legal(), NextChapter)
	assert.NotContains(t, s.Legal(), PrevChapter)
	assert.Equal(t, 0, s.Apply(NextChapter).Scroll)
	assert.Empty(t, s.ChapterStatus())
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s := newTestSession(numbered(100), 20)
	next := s.Apply(NextPage)

	assert.Equal(t, 0, s.Scroll)
	assert.Equal(t, Command(""), s.Last)
	assert.Equal(t, 20, next.Scroll)
	assert.Equal(t, NextPage, next.Last)
}

func TestUnknownCommandIsNoop(t *testing.T) {
	s := newTestSession(numbered(100), 20).Apply(NextPage)
	s = s.Apply(Command("sideways"))
	assert.Equal(t, 20, s.Scroll)
	assert.False(t, s.Done())
}

func TestQuit(t *testing.T) {
	s := newTestSession(numbered(10), 20)
	assert.Equal(t, []Command{Quit}, s.Legal())
	assert.True(t, s.Apply(Quit).Done())
}

func TestRestore(t *testing.T) {
	s := newTestSession(chapterBook(), 20)

	t.Run("matching chapter is kept", func(t *testing.T) {
		r := s.Restore(state.Position{Scroll: 130, Chapter: intPtr(3)})
		assert.Equal(t, 130, r.Scroll)
		assert.Equal(t, 3, r.Chapter)
	})

	t.Run("chapter that disagrees with scroll is resolved", func(t *testing.T) {
		r := s.Restore(state.Position{Scroll: 130, Chapter: intPtr(2)})
		assert.Equal(t, 130, r.Scroll)
		assert.Equal(t, 3, r.Chapter)
		assert.Contains(t, r.ChapterStatus(), "Chapter 4 of 4")

		r = s.Restore(state.Position{Scroll: 12, Chapter: intPtr(3)})
		assert.Equal(t, 0, r.Chapter)
	})

	t.Run("missing chapter is resolved", func(t *testing.T) {
		r := s.Restore(state.Position{Scroll: 130})
		assert.Equal(t, 3, r.Chapter)
	})

	t.Run("out of range chapter is resolved", func(t *testing.T) {
		r := s.Restore(state.Position{Scroll: 12, Chapter: intPtr(9)})
		assert.Equal(t, 0, r.Chapter)
	})

	t.Run("scroll is clamped", func(t *testing.T) {
		r := s.Restore(state.Position{Scroll: 199})
		assert.Equal(t, 180, r.Scroll)
	})
}

func TestNextChapterAfterRestoreNeverMovesBack(t *testing.T) {
	s := newTestSession(chapterBook(), 20)

	for scroll := 0; scroll <= s.MaxScroll(); scroll++ {
		for ch := 0; ch < len(s.Document().Markers); ch++ {
			r := s.Restore(state.Position{Scroll: scroll, Chapter: intPtr(ch)})
			assert.Equal(t, reader.ResolveChapter(r.Document().Markers, r.Scroll), r.Chapter,
				"scroll %d stored chapter %d", scroll, ch)

			next := r.Apply(NextChapter)
			assert.GreaterOrEqual(t, next.Scroll, r.Scroll, "scroll %d stored chapter %d", scroll, ch)
		}
	}
}

func TestSectionTitle(t *testing.T) {
	doc := NewDocument(numbered(100), reader.DefaultHeadingRules()).
		WithSections([]reader.Section{{Line: 5, Title: "Opening"}, {Line: 50, Title: "Closing"}})
	s := NewSession(doc, DefaultOptions())

	assert.Equal(t, "", s.SectionTitle())
	assert.Equal(t, "Opening", s.Apply(NextPage).SectionTitle())
	assert.Equal(t, "Closing", s.Apply(NextPage).Apply(NextPage).Apply(NextPage).SectionTitle())
	assert.Equal(t, "", newTestSession(numbered(100), 20).Apply(NextPage).SectionTitle())
}

func markerLines(markers []reader.Marker) []int {
	out := make([]int, len(markers))
	for i, m := range markers {
		out[i] = m.Line
	}
	return out
}

func intPtr(i int) *int { return &i }
