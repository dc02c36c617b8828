package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/jotvault/jot/pkg/core"
)

// Repository holds the current note collection in memory and is the
// source of truth during a session. Every mutation writes the whole
// collection back through the injected Store. This is a deliberate
// simplicity tradeoff: fine for personal note sets, a ceiling for
// large ones.
type Repository struct {
	mu     sync.RWMutex
	store  core.Store
	clock  core.Clock
	logger *slog.Logger
	notes  []core.Note
}

// Config holds the dependencies for a Repository.
type Config struct {
	Store  core.Store
	Clock  core.Clock
	Logger *slog.Logger
}

// NewRepository creates a Repository over the given store. The
// collection is empty until Load is called.
func NewRepository(cfg Config) *Repository {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		store:  cfg.Store,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
}

// Load hydrates the collection from the store. A missing or malformed
// slot yields an empty collection; Load never fails the process.
func (r *Repository) Load(ctx context.Context) error {
	notes, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn("failed to load notes, starting empty", "error", err)
		notes = nil
	}

	r.mu.Lock()
	r.notes = notes
	r.mu.Unlock()
	return nil
}

// Reload is Load under another name, used when the store signals an
// external change.
func (r *Repository) Reload(ctx context.Context) error {
	return r.Load(ctx)
}

// Upsert inserts the note, or replaces it entirely when a note with
// the same ID already exists. UpdatedAt is stamped to the current
// time in both cases. Returns the canonical note as persisted.
func (r *Repository) Upsert(ctx context.Context, n core.Note) (core.Note, error) {
	if n.ID == "" {
		return core.Note{}, errors.New("note has no ID")
	}
	if n.Category == "" {
		n.Category = core.CategoryGeneral
	}
	if !n.Category.Valid() {
		return core.Note{}, fmt.Errorf("%w: %q", core.ErrInvalidCategory, n.Category)
	}

	n.UpdatedAt = r.clock().UnixMilli()

	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := false
	for i := range r.notes {
		if r.notes[i].ID == n.ID {
			r.notes[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		r.notes = append(r.notes, n)
	}

	if err := r.persist(ctx); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Remove deletes the note with the given ID. Removing an unknown ID
// is a no-op, not an error.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notes {
		if r.notes[i].ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return r.persist(ctx)
		}
	}
	return nil
}

// ToggleFavorite flips the favorite flag on the matching note. It
// reports whether a note was found; an unknown ID is a no-op.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (core.Note, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notes {
		if r.notes[i].ID == id {
			r.notes[i].Favorite = !r.notes[i].Favorite
			if err := r.persist(ctx); err != nil {
				return core.Note{}, true, err
			}
			return r.notes[i], true, nil
		}
	}
	return core.Note{}, false, nil
}

// Get returns a copy of the note with the given ID.
func (r *Repository) Get(id string) (core.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return core.Note{}, false
}

// All returns a copy of the current collection. Order carries no
// meaning; use Filter for display order.
func (r *Repository) All() []core.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// Len returns the number of notes in the collection.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}

// Watch subscribes to external changes of the underlying store and
// reloads the collection on each signal. The returned channel relays
// the signal after the reload so callers can re-render.
func (r *Repository) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, ok := r.store.(core.Watcher)
	if !ok {
		return nil, errors.New("store does not support watching")
	}

	src, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan struct{}, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-src:
				if !ok {
					return nil
				}
				if err := r.Reload(ctx); err != nil {
					r.logger.Warn("reload after store change failed", "error", err)
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("watch bridge failed", "error", err)
	}))
	return out, nil
}

// persist writes the whole collection through to the store. Callers
// must hold the write lock.
func (r *Repository) persist(ctx context.Context) error {
	snapshot := make([]core.Note, len(r.notes))
	copy(snapshot, r.notes)

	if err := r.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	return nil
}
