// Package file implements core.Store over a single JSON file: the
// whole collection is one serialized blob, replaced atomically on
// every save.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jotvault/jot/pkg/core"
)

// DefaultFilename is the blob file name inside a data directory.
const DefaultFilename = "notes.json"

// Store is a file-backed core.Store.
type Store struct {
	path   string
	logger *slog.Logger
}

// Config holds the configuration for the file store.
type Config struct {
	// Path is the location of the blob file. Parent directories are
	// created on first save.
	Path   string
	Logger *slog.Logger
}

// NewStore creates a file-backed store.
func NewStore(cfg Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: cfg.Path, logger: cfg.Logger}
}

// Path returns the blob file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full collection. A missing file yields an empty
// collection; a malformed blob is logged and also yields an empty
// collection, never an error.
func (s *Store) Load(ctx context.Context) ([]core.Note, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var notes []core.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		s.logger.Warn("malformed notes file, starting empty", "path", s.path, "error", err)
		return nil, nil
	}
	return notes, nil
}

// Save replaces the blob wholesale with an atomic temp-file rename.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}

	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := replaceAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write notes file: %w", err)
	}
	return nil
}

// TempFilePrefix marks in-flight blob replacements; the watcher skips
// files carrying it.
const TempFilePrefix = "jot-tmp-"

// replaceAtomic swaps the blob in one step: readers observe either
// the old collection or the new one, never a partial write. The data
// is staged in a temp file in the same directory (rename does not
// cross filesystems) and renamed over the target after a sync.
func replaceAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage blob: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to stage blob: %w", err)
	}

	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("failed to chmod staged blob: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

var _ core.Store = (*Store)(nil)
var _ core.Watcher = (*Store)(nil)
