package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// MinPageWidth is the narrowest page that still fits a chapter heading.
const MinPageWidth = 10

// Validate checks the configuration for values the reader cannot work with.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("page.width", c.Page.Width, atLeast(MinPageWidth)),
		criterio.Run("page.height", c.Page.Height, atLeast(1)),
		criterio.Run("headings.min_text", c.Headings.MinText, atLeast(0)),
		criterio.Run("headings.lookahead", c.Headings.Lookahead, atLeast(1)),
		criterio.Run("headings.toc_lookahead", c.Headings.TOCLookahead, atLeast(1)),
		criterio.Run("headings.prev_min_index", c.Headings.PrevMinIndex, atLeast(0)),
		criterio.Run("state.dir", c.State.Dir, isDirectoryOrNotExist),
		criterio.Run("library.ignore", c.Library.Ignore, validGlobs),
	)
}

func atLeast(n int) func(int) error {
	return func(v int) error {
		if v < n {
			return fmt.Errorf("must be at least %d, got %d", n, v)
		}
		return nil
	}
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func validGlobs(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob %q", p)
		}
	}
	return nil
}
