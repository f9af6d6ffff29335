package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format defines a file format reader for loading books.
type Format interface {
	Name() string
	Extensions() []string
	Open(filename string, opts OpenOptions) (*Book, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Open loads a book from a file, using a registered format or the plain
// text fallback.
func Open(filename string, opts OpenOptions) (*Book, error) {
	f := formatFor(filename)

	book, err := f.Open(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s as %s: %w", filename, f.Name(), err)
	}
	return book, nil
}

func formatFor(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return &TextFormat{}
}

// IsSupported reports whether a registered format claims the file's extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

// SupportedExtensions returns every extension claimed by a registered format.
func SupportedExtensions() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Extensions()...)
	}
	return out
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
