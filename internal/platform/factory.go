package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jotvault/jot/pkg/adapters/file"
	"github.com/jotvault/jot/pkg/adapters/sqlite"
	"github.com/jotvault/jot/pkg/notes"
)

// Data file names inside a data directory.
const (
	blobFilename   = file.DefaultFilename
	sqliteFilename = "jot.db"
)

// Open wires a repository over the configured store rooted at dataDir
// and hydrates it. Loading fails open: a missing or corrupt slot
// yields an empty collection.
func Open(ctx context.Context, dataDir string, opts ...Option) (*notes.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		switch o.storeKind {
		case StoreFile:
			store = file.NewStore(file.Config{
				Path:   filepath.Join(dataDir, blobFilename),
				Logger: o.logger,
			})
		case StoreSQLite:
			s, err := sqlite.New(filepath.Join(dataDir, sqliteFilename))
			if err != nil {
				return nil, fmt.Errorf("failed to open sqlite store: %w", err)
			}
			store = s
		default:
			return nil, fmt.Errorf("unknown store kind: %q", o.storeKind)
		}
	}

	repo := notes.NewRepository(notes.Config{
		Store:  store,
		Clock:  o.clock,
		Logger: o.logger,
	})
	if err := repo.Load(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewSession creates an editor session over the repository with the
// configured assistant and exporter.
func NewSession(repo *notes.Repository, opts ...Option) *notes.Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return notes.NewSession(repo, notes.SessionConfig{
		Assistant: o.assistant,
		Exporter:  o.exporter,
		Clock:     o.clock,
		Logger:    o.logger,
		NewID:     o.newID,
	})
}
