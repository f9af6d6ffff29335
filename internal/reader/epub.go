package reader

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/taylorskalyo/goreader/epub"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

// Open reads the spine of an EPUB file in order. A spine item that cannot be
// read fails the whole book unless opts.SkipBroken is set.
func (f *EPUBFormat) Open(filename string, opts OpenOptions) (*Book, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	rootfile := rc.Rootfiles[0]
	titles := chapterTitles(rootfile)

	book := &Book{
		Path:  filename,
		Title: strings.TrimSpace(rootfile.Metadata.Title),
	}

	for _, ref := range rootfile.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}

		markup, err := readItem(ref.Item)
		if err != nil {
			if opts.SkipBroken {
				log.Warn().Err(err).Str("chapter", ref.Item.HREF).Msg("skipping unreadable chapter")
				continue
			}
			return nil, fmt.Errorf("read chapter %s: %w", ref.Item.HREF, err)
		}

		book.Chapters = append(book.Chapters, Chapter{
			ID:     ref.Item.HREF,
			Title:  lookupTitle(titles, ref.Item.HREF),
			Markup: markup,
		})
	}

	if len(book.Chapters) == 0 {
		return nil, ErrNoContent
	}

	return book, nil
}

func readItem(item *epub.Item) (string, error) {
	r, err := item.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func lookupTitle(titles map[string]string, href string) string {
	if t, ok := titles[href]; ok {
		return t
	}
	if t, ok := titles[path.Base(href)]; ok {
		return t
	}
	return ""
}
