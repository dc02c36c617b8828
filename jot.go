package jot

import (
	"context"
	"log/slog"

	"github.com/jotvault/jot/internal/platform"
	"github.com/jotvault/jot/pkg/core"
	"github.com/jotvault/jot/pkg/notes"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// Category is a public alias for the fixed classification tag.
type Category = core.Category

// Query is a public alias for the derived-view query.
type Query = notes.Query

// Stats is a public alias for the aggregate counts.
type Stats = notes.Stats

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// Store kinds selectable with WithStoreKind.
const (
	StoreFile   = platform.StoreFile
	StoreSQLite = platform.StoreSQLite
)

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithStoreKind selects the storage adapter by name ("file", "sqlite").
func WithStoreKind(kind string) Option {
	return platform.WithStoreKind(kind)
}

// WithLogger sets the logger for the repository and adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock injects the time source used for UpdatedAt stamping.
func WithClock(clock core.Clock) Option {
	return platform.WithClock(clock)
}

// WithAssistant wires the AI assistant used by editor sessions.
func WithAssistant(a core.Assistant) Option {
	return platform.WithAssistant(a)
}

// WithExporter wires the document exporter used by editor sessions.
func WithExporter(e core.Exporter) Option {
	return platform.WithExporter(e)
}

// WithIDGenerator overrides the note ID allocator.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// --- Factory ---

// Open wires and hydrates a note repository rooted at dataDir.
func Open(ctx context.Context, dataDir string, opts ...Option) (*notes.Repository, error) {
	return platform.Open(ctx, dataDir, opts...)
}

// NewSession creates an editor session over an open repository.
func NewSession(repo *notes.Repository, opts ...Option) *notes.Session {
	return platform.NewSession(repo, opts...)
}

// --- Operations ---

// Filter derives the ordered view of a collection for a query.
func Filter(collection []Note, q Query) []Note {
	return notes.Filter(collection, q)
}

// Counts recomputes the aggregate stats for a collection.
func Counts(collection []Note) Stats {
	return notes.Counts(collection)
}
