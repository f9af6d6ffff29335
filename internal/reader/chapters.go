package reader

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Heading heuristics defaults.
const (
	// DefaultHeadingMinText is the amount of text that must follow a heading
	// for it to count as a chapter start rather than a table of contents row.
	DefaultHeadingMinText = 100
	// DefaultHeadingLookahead is how many following lines are summed against
	// DefaultHeadingMinText.
	DefaultHeadingLookahead = 5
	// DefaultTOCLookahead is the window in which another heading marks a
	// chapter as part of a listing rather than a jump target.
	DefaultTOCLookahead = 10
)

var headingRegex = regexp.MustCompile(`(?i)^chapter\s+(\d+)`)

// Marker is an accepted chapter heading in the line buffer.
type Marker struct {
	Line    int // buffer index of the heading line
	Chapter int // number printed in the heading
}

// HeadingRules tunes chapter detection.
type HeadingRules struct {
	MinText      int
	Lookahead    int
	TOCLookahead int
}

// DefaultHeadingRules returns the standard detection thresholds.
func DefaultHeadingRules() HeadingRules {
	return HeadingRules{
		MinText:      DefaultHeadingMinText,
		Lookahead:    DefaultHeadingLookahead,
		TOCLookahead: DefaultTOCLookahead,
	}
}

// ParseHeading reports whether line looks like "Chapter <n>" and returns n.
// Numbers too large for an int saturate at math.MaxInt.
func ParseHeading(line string) (int, bool) {
	m := headingRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		n = math.MaxInt
	}
	return n, true
}

// IsHeading reports whether line looks like a chapter heading.
func IsHeading(line string) bool {
	_, ok := ParseHeading(line)
	return ok
}

// FindChapters scans lines for chapter headings. A heading is kept only when
// the lines right after it carry more than rules.MinText characters, which
// drops table of contents blocks where headings are stacked together.
func FindChapters(lines []string, rules HeadingRules) []Marker {
	var markers []Marker
	for i, line := range lines {
		n, ok := ParseHeading(line)
		if !ok {
			continue
		}

		textLen := 0
		for j := 1; j <= rules.Lookahead && i+j < len(lines); j++ {
			textLen += utf8.RuneCountInString(strings.TrimSpace(lines[i+j]))
		}
		if textLen > rules.MinText {
			markers = append(markers, Marker{Line: i, Chapter: n})
		}
	}
	return markers
}

// ResolveChapter returns the index of the last marker at or above scroll, or
// 0 when there is none.
func ResolveChapter(markers []Marker, scroll int) int {
	idx := 0
	for i, m := range markers {
		if m.Line > scroll {
			break
		}
		idx = i
	}
	return idx
}

// Plausible reports whether markers[k] is a real chapter start: no other
// heading-shaped line follows it within rules.TOCLookahead lines.
func Plausible(lines []string, markers []Marker, k int, rules HeadingRules) bool {
	if k < 0 || k >= len(markers) {
		return false
	}
	start := markers[k].Line
	for j := 1; j <= rules.TOCLookahead && start+j < len(lines); j++ {
		if IsHeading(lines[start+j]) {
			return false
		}
	}
	return true
}
