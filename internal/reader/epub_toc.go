package reader

import (
	"encoding/xml"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

const ncxMediaType = "application/x-dtbncx+xml"

// navPoint is one entry of an NCX navMap. Entries nest.
type navPoint struct {
	Label    string     `xml:"navLabel>text"`
	Src      navSrc     `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navSrc struct {
	Path string `xml:"src,attr"`
}

type navDoc struct {
	Points []navPoint `xml:"navMap>navPoint"`
}

// chapterTitles maps spine hrefs to the labels the book's NCX gives them.
// Both the full href and its base name are keys. A book without a readable
// NCX yields an empty map.
func chapterTitles(rootfile *epub.Rootfile) map[string]string {
	titles := make(map[string]string)

	item := ncxItem(rootfile)
	if item == nil {
		return titles
	}

	data, err := readItem(item)
	if err != nil {
		return titles
	}

	var doc navDoc
	if err := xml.Unmarshal([]byte(data), &doc); err != nil {
		return titles
	}

	// NCX src paths are relative to the NCX file, spine hrefs to the OPF.
	collectTitles(doc.Points, path.Dir(item.HREF), titles)
	return titles
}

func collectTitles(points []navPoint, dir string, titles map[string]string) {
	for _, np := range points {
		if href, _, _ := strings.Cut(np.Src.Path, "#"); href != "" {
			href = path.Clean(path.Join(dir, href))
			title := strings.TrimSpace(np.Label)
			for _, key := range []string{href, path.Base(href)} {
				if _, ok := titles[key]; !ok {
					titles[key] = title
				}
			}
		}
		collectTitles(np.Children, dir, titles)
	}
}

func ncxItem(rootfile *epub.Rootfile) *epub.Item {
	for i := range rootfile.Manifest.Items {
		item := &rootfile.Manifest.Items[i]
		if item.MediaType == ncxMediaType || strings.HasSuffix(strings.ToLower(item.HREF), ".ncx") {
			return item
		}
	}
	return nil
}
