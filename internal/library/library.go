// Package library lists the books kept under a directory and lets the user
// pick one.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/metcalfc/folio/internal/prompt"
	"github.com/metcalfc/folio/internal/reader"
)

// ErrEmpty is returned when a library folder holds no books.
var ErrEmpty = errors.New("no books found")

const returnValue = "\x00return"

// Folders returns the names of the directories directly under root, sorted.
func Folders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			folders = append(folders, e.Name())
		}
	}
	return folders, nil
}

// Books walks dir and returns every file with a supported book extension.
// Files and directories whose slash-separated path relative to dir matches
// one of the ignore globs are left out.
func Books(dir string, ignore ...string) ([]string, error) {
	var books []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel != "." && ignored(filepath.ToSlash(rel), ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && reader.IsSupported(path) {
			books = append(books, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(books)
	return books, nil
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// FolderTitle turns a folder slug such as "the-long-road" into "The Long Road".
func FolderTitle(folder string) string {
	parts := strings.Split(folder, "-")
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size == 0 {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

// Choose asks the user for a folder under root and then a book inside it.
// Books matching an ignore glob are not offered.
// Picking "Return to main menu" goes back to the folder list. It returns ""
// when the user backs out of the folder prompt.
func Choose(ctx context.Context, p prompt.Prompter, root string, ignore ...string) (string, error) {
	folders, err := Folders(root)
	if err != nil {
		return "", fmt.Errorf("list library: %w", err)
	}
	if len(folders) == 0 {
		return "", fmt.Errorf("%s: %w", root, ErrEmpty)
	}

	choices := make([]prompt.Choice, 0, len(folders))
	for _, f := range folders {
		choices = append(choices, prompt.Choice{Label: FolderTitle(f), Value: f})
	}

	last := ""
	for {
		folder, err := p.Select(ctx, "Select a book to read:", choices, last)
		if err != nil || folder == "" {
			return "", err
		}
		last = folder

		book, err := chooseBook(ctx, p, filepath.Join(root, folder), ignore)
		if err != nil || book != "" {
			return book, err
		}
	}
}

func chooseBook(ctx context.Context, p prompt.Prompter, dir string, ignore []string) (string, error) {
	books, err := Books(dir, ignore...)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dir, err)
	}
	if len(books) == 0 {
		return "", fmt.Errorf("%s: %w", dir, ErrEmpty)
	}

	choices := make([]prompt.Choice, 0, len(books)+1)
	for _, b := range books {
		choices = append(choices, prompt.Choice{Label: filepath.Base(b), Value: b})
	}
	choices = append(choices, prompt.Choice{Label: "Return to main menu", Value: returnValue})

	book, err := p.Select(ctx, "Select a file to read:", choices, "")
	if err != nil || book == returnValue {
		return "", err
	}
	return book, nil
}
