// Package state persists reading positions between sessions.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Suffix is appended to a book's path (or path hash) to name its record.
const Suffix = ".readpos.json"

// Position is a saved reading position. Chapter is nil when the record
// carries no chapter index.
type Position struct {
	Scroll  int
	Chapter *int
}

type record struct {
	Scroll  *int `json:"scroll"`
	Chapter *int `json:"chapter,omitempty"`
}

// Store manages position records. With an empty dir each record sits next
// to its book; otherwise records live in dir, named by a hash of the book
// path.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a store. A non-empty dir is created if missing.
func NewStore(dir string) (*Store, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{dir: dir}, nil
}

// DefaultDir returns XDG_STATE_HOME/folio or ~/.local/state/folio
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "folio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "folio")
}

// HashKey derives a stable file name from a book path.
func HashKey(bookPath string) string {
	if abs, err := filepath.Abs(bookPath); err == nil {
		bookPath = abs
	}
	hash := sha256.Sum256([]byte(bookPath))
	return hex.EncodeToString(hash[:16]) // First 16 bytes = 32 hex chars
}

// PathFor returns where the record for bookPath is stored.
func (s *Store) PathFor(bookPath string) string {
	if s.dir == "" {
		return bookPath + Suffix
	}
	return filepath.Join(s.dir, HashKey(bookPath)+Suffix)
}

// Load returns the saved position for bookPath. A missing, unreadable or
// malformed record reports false.
func (s *Store) Load(bookPath string) (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.PathFor(bookPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", path).Msg("position record unreadable")
		}
		return Position{}, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("position record malformed")
		return Position{}, false
	}
	if rec.Scroll == nil {
		return Position{}, false
	}

	return Position{Scroll: *rec.Scroll, Chapter: rec.Chapter}, true
}

// Save overwrites the record for bookPath.
func (s *Store) Save(bookPath string, scroll, chapter int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record{Scroll: &scroll, Chapter: &chapter})
	if err != nil {
		return err
	}
	return os.WriteFile(s.PathFor(bookPath), data, 0o644)
}

// Clear removes the record for bookPath. Clearing a missing record is not
// an error.
func (s *Store) Clear(bookPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.PathFor(bookPath))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
