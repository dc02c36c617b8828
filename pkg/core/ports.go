package core

import "context"

// Store defines the contract for persisting the note collection.
// The collection is read and written as a whole: no partial writes,
// no transactions. Adhering to this interface keeps the core
// independent of the underlying storage mechanism (JSON file, SQLite).
type Store interface {
	// Load retrieves the full collection. An absent slot yields an
	// empty collection and a nil error.
	Load(ctx context.Context) ([]Note, error)

	// Save replaces the persisted collection wholesale.
	Save(ctx context.Context, notes []Note) error
}

// Watcher is an optional capability for stores that can observe
// external modification of the persisted slot.
type Watcher interface {
	// Watch emits a signal whenever the slot changes outside this
	// process. The channel closes when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Assistant defines the contract for the remote AI helper. Both
// operations are fallible remote calls; callers must treat any failure
// as a recoverable no-op.
type Assistant interface {
	// SuggestMetadata proposes a title, summary and category for the
	// given content. Content below the adapter's minimum length
	// short-circuits to an empty Suggestion without a remote call.
	SuggestMetadata(ctx context.Context, content string) (Suggestion, error)

	// EnhanceContent returns a rewritten version of the content, or
	// the original content unchanged alongside the error on failure.
	EnhanceContent(ctx context.Context, content string) (string, error)
}

// Exporter defines the contract for rendering a note into a binary
// document (e.g. PDF). Failures are surfaced to the caller, never
// swallowed.
type Exporter interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}
