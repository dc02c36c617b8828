package platform

import (
	"log/slog"

	"github.com/jotvault/jot/pkg/core"
)

// Store kinds selectable by name.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// options holds the internal configuration for the jot service.
type options struct {
	store     core.Store
	storeKind string
	logger    *slog.Logger
	clock     core.Clock
	assistant core.Assistant
	exporter  core.Exporter
	newID     func() string
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		storeKind: StoreFile,
	}
}

// WithStore allows injecting a custom storage adapter (e.g. a mock).
// If provided, the named store kind is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithStoreKind selects the storage adapter by name ("file" or
// "sqlite"). Defaults to "file".
func WithStoreKind(kind string) Option {
	return func(o *options) {
		o.storeKind = kind
	}
}

// WithLogger sets the logger for the repository and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock injects the time source used for UpdatedAt stamping.
func WithClock(clock core.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithAssistant wires the AI assistant used by editor sessions.
func WithAssistant(a core.Assistant) Option {
	return func(o *options) {
		o.assistant = a
	}
}

// WithExporter wires the document exporter used by editor sessions.
func WithExporter(e core.Exporter) Option {
	return func(o *options) {
		o.exporter = e
	}
}

// WithIDGenerator overrides the note ID allocator (useful for
// deterministic tests).
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}
