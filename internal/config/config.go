// Package config handles configuration loading and validation for folio.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/metcalfc/folio/internal/pager"
	"github.com/metcalfc/folio/internal/reader"
)

// Config holds the application configuration.
type Config struct {
	Page               PageConfig     `yaml:"page"`
	Headings           HeadingsConfig `yaml:"headings"`
	State              StateConfig    `yaml:"state"`
	Library            LibraryConfig  `yaml:"library"`
	SkipBrokenChapters bool           `yaml:"skip_broken_chapters" env:"FOLIO_SKIP_BROKEN_CHAPTERS"`
}

// PageConfig is the size of the reading window in cells.
type PageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HeadingsConfig tunes chapter heading detection.
type HeadingsConfig struct {
	MinText      int `yaml:"min_text"       env:"FOLIO_HEADINGS_MIN_TEXT"`       // text after a heading needed to accept it
	Lookahead    int `yaml:"lookahead"      env:"FOLIO_HEADINGS_LOOKAHEAD"`      // lines summed for min_text
	TOCLookahead int `yaml:"toc_lookahead"  env:"FOLIO_HEADINGS_TOC_LOOKAHEAD"`  // window that marks a heading as a listing
	PrevMinIndex int `yaml:"prev_min_index" env:"FOLIO_HEADINGS_PREV_MIN_INDEX"` // prev-chapter disabled below this index
}

// StateConfig controls where reading positions are stored.
type StateConfig struct {
	Dir string `yaml:"dir" env:"FOLIO_STATE_DIR"` // empty stores records next to each book
}

// LibraryConfig locates the book library.
type LibraryConfig struct {
	Dir    string   `yaml:"dir"    env:"FOLIO_LIBRARY_DIR"`
	Ignore []string `yaml:"ignore" env:"FOLIO_LIBRARY_IGNORE"` // globs relative to a library folder
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	rules := reader.DefaultHeadingRules()
	return Config{
		Page: PageConfig{
			Width:  pager.DefaultPageWidth,
			Height: pager.DefaultPageHeight,
		},
		Headings: HeadingsConfig{
			MinText:      rules.MinText,
			Lookahead:    rules.Lookahead,
			TOCLookahead: rules.TOCLookahead,
			PrevMinIndex: pager.DefaultPrevChapterMinIndex,
		},
		Library: LibraryConfig{
			Dir: "~/Books",
		},
	}
}

// Load reads the config file at configPath over the defaults, then applies
// FOLIO_* environment overrides. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.applyDefaults()
	cfg.Library.Dir = expandHome(cfg.Library.Dir)
	cfg.State.Dir = expandHome(cfg.State.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Page.Width == 0 {
		c.Page.Width = defaults.Page.Width
	}
	if c.Page.Height == 0 {
		c.Page.Height = defaults.Page.Height
	}
	if c.Headings.Lookahead == 0 {
		c.Headings.Lookahead = defaults.Headings.Lookahead
	}
	if c.Headings.TOCLookahead == 0 {
		c.Headings.TOCLookahead = defaults.Headings.TOCLookahead
	}
	if c.Library.Dir == "" {
		c.Library.Dir = defaults.Library.Dir
	}
}

// HeadingRules returns the chapter detection thresholds.
func (c *Config) HeadingRules() reader.HeadingRules {
	return reader.HeadingRules{
		MinText:      c.Headings.MinText,
		Lookahead:    c.Headings.Lookahead,
		TOCLookahead: c.Headings.TOCLookahead,
	}
}

// PagerOptions returns the page geometry and navigation rules.
func (c *Config) PagerOptions() pager.Options {
	return pager.Options{
		PageWidth:           c.Page.Width,
		PageHeight:          c.Page.Height,
		PrevChapterMinIndex: c.Headings.PrevMinIndex,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/folio/config.yaml or
// ~/.config/folio/config.yaml.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "folio", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "folio", "config.yaml")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
