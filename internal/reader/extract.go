package reader

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// DefaultPageWidth is the wrap width used when none is configured.
const DefaultPageWidth = 80

// blockTags end a paragraph. Inline tags such as <b> or <span> do not.
var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true,
	atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// skipTags hold no reading text.
var skipTags = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Title: true,
}

// StripMarkup removes tags from markup and decodes entities. Block-level
// element boundaries become blank lines so they separate paragraphs.
func StripMarkup(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var out strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return out.String()

		case html.TextToken:
			if skip == 0 {
				out.Write(z.Text())
			}

		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)

			if skipTags[a] {
				switch {
				case tt == html.StartTagToken:
					skip++
				case tt == html.EndTagToken && skip > 0:
					skip--
				}
				continue
			}

			if blockTags[a] {
				out.WriteString("\n\n")
			}
		}
	}
}

// Paragraphs strips markup and splits the text on blank lines. Paragraphs
// are trimmed and empty ones dropped; soft line breaks inside a paragraph
// are folded into spaces. Text is NFC normalized so decomposed accents
// measure as one cell.
func Paragraphs(markup string) []string {
	text := norm.NFC.String(StripMarkup(markup))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var (
		paras   []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			paras = append(paras, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paras
}

// Wrap greedily packs the words of a paragraph into lines no wider than
// width display cells. Words are never split, so a single word wider than
// width gets a line of its own.
func Wrap(paragraph string, width int) []string {
	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)

	for _, word := range strings.Fields(paragraph) {
		w := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += w
	}

	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// CenterTitle pads title so it sits in the middle of width cells. Titles
// wider than width are returned unchanged.
func CenterTitle(title string, width int) string {
	w := runewidth.StringWidth(title)
	if w >= width {
		return title
	}
	return strings.Repeat(" ", (width+w)/2-w) + title
}

// Flatten lays out a title and paragraphs as display lines. Each paragraph
// is followed by one blank separator line; trailing blank lines are removed.
func Flatten(title string, paragraphs []string, width int) []string {
	lines, _ := flatten(title, paragraphs, width)
	return lines
}

// flatten is Flatten that also returns the line each paragraph starts on.
func flatten(title string, paragraphs []string, width int) ([]string, []int) {
	var lines []string
	starts := make([]int, len(paragraphs))

	if title = strings.TrimSpace(title); title != "" {
		lines = append(lines, CenterTitle(title, width), "")
	}

	for i, para := range paragraphs {
		starts[i] = len(lines)
		wrapped := Wrap(para, width)
		if len(wrapped) == 0 {
			continue
		}
		lines = append(lines, wrapped...)
		lines = append(lines, "")
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, starts
}

// Section is where a titled chapter of the book begins in the line buffer.
type Section struct {
	Line  int
	Title string
}

// Lines flattens every chapter of book, in order, into the line buffer read
// by the pager.
func Lines(book *Book, width int) []string {
	lines, _ := Layout(book, width)
	return lines
}

// Layout is Lines plus the sections of the chapters that carry a title.
// Chapters without text get no section.
func Layout(book *Book, width int) ([]string, []Section) {
	type pending struct {
		para  int
		title string
	}

	var (
		paras  []string
		titled []pending
	)
	for _, ch := range book.Chapters {
		p := Paragraphs(ch.Markup)
		if len(p) == 0 {
			continue
		}
		if t := strings.TrimSpace(ch.Title); t != "" {
			titled = append(titled, pending{para: len(paras), title: t})
		}
		paras = append(paras, p...)
	}

	lines, starts := flatten(book.Title, paras, width)

	sections := make([]Section, 0, len(titled))
	for _, t := range titled {
		sections = append(sections, Section{Line: starts[t.para], Title: t.title})
	}
	return lines, sections
}

// SectionAt returns the title of the last section starting at or above
// line, or "" when line comes before every section.
func SectionAt(sections []Section, line int) string {
	title := ""
	for _, s := range sections {
		if s.Line > line {
			break
		}
		title = s.Title
	}
	return title
}
