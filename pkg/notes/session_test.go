package notes_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jotvault/jot/pkg/core"
	"github.com/jotvault/jot/pkg/notes"
)

// fakeAssistant is a scriptable core.Assistant. An optional gate
// channel blocks the call until released, to simulate slow responses.
type fakeAssistant struct {
	suggestion core.Suggestion
	enhanced   string
	err        error
	gate       chan struct{}

	mu    sync.Mutex
	calls int
}

func (f *fakeAssistant) SuggestMetadata(ctx context.Context, content string) (core.Suggestion, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.suggestion, f.err
}

func (f *fakeAssistant) EnhanceContent(ctx context.Context, content string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return content, f.err
	}
	return f.enhanced, nil
}

type fakeExporter struct {
	lastDoc core.Document
	err     error
}

func (f *fakeExporter) Render(ctx context.Context, doc core.Document) ([]byte, error) {
	f.lastDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("rendered"), nil
}

func sequentialIDs() func() string {
	i := 0
	return func() string {
		i++
		return string(rune('a' + i - 1))
	}
}

func newSession(t *testing.T, store *memStore, cfg notes.SessionConfig) (*notes.Session, *notes.Repository) {
	t.Helper()
	repo := newRepo(t, store, fixedClock(100))
	if cfg.Clock == nil {
		cfg.Clock = fixedClock(100)
	}
	if cfg.NewID == nil {
		cfg.NewID = sequentialIDs()
	}
	return notes.NewSession(repo, cfg), repo
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Commit Roundtrip", func(t *testing.T) {
		store := &memStore{}
		s, repo := newSession(t, store, notes.SessionConfig{})

		draft, err := s.OpenForCreate()
		require.NoError(t, err)
		assert.Equal(t, notes.StateDraftNew, s.State())
		assert.Equal(t, core.CategoryGeneral, draft.Category)
		assert.False(t, draft.Favorite)

		// Draft is invisible to the repository until Commit.
		assert.Equal(t, 0, repo.Len())

		require.NoError(t, s.SetTitle("Plan"))
		require.NoError(t, s.SetContent("draft the roadmap"))
		require.NoError(t, s.SetCategory(core.CategoryWork))

		n, err := s.Commit(ctx)
		require.NoError(t, err)
		assert.Equal(t, notes.StateClosed, s.State())
		assert.Equal(t, 1, repo.Len())
		assert.Equal(t, "Plan", n.Title)
	})

	t.Run("Edit Copies Independently", func(t *testing.T) {
		store := &memStore{notes: []core.Note{{ID: "1", Title: "orig", Category: core.CategoryGeneral, UpdatedAt: 50}}}
		s, repo := newSession(t, store, notes.SessionConfig{})

		_, err := s.OpenForEdit("1")
		require.NoError(t, err)
		assert.Equal(t, notes.StateDraftEditing, s.State())

		require.NoError(t, s.SetTitle("changed"))

		// Persisted note untouched while the draft is open.
		stored, _ := repo.Get("1")
		assert.Equal(t, "orig", stored.Title)

		_, err = s.Commit(ctx)
		require.NoError(t, err)
		stored, _ = repo.Get("1")
		assert.Equal(t, "changed", stored.Title)
		assert.Equal(t, 1, repo.Len())
	})

	t.Run("Discard Persists Nothing", func(t *testing.T) {
		store := &memStore{notes: []core.Note{{ID: "1", Title: "orig", Category: core.CategoryGeneral}}}
		s, repo := newSession(t, store, notes.SessionConfig{})

		_, err := s.OpenForEdit("1")
		require.NoError(t, err)
		require.NoError(t, s.SetTitle("changed"))
		s.Discard()

		assert.Equal(t, notes.StateClosed, s.State())
		stored, _ := repo.Get("1")
		assert.Equal(t, "orig", stored.Title)
	})

	t.Run("Second Open Is Rejected", func(t *testing.T) {
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{})
		_, err := s.OpenForCreate()
		require.NoError(t, err)

		_, err = s.OpenForCreate()
		assert.ErrorIs(t, err, core.ErrSessionOpen)
	})

	t.Run("Edit Of Unknown Note Fails", func(t *testing.T) {
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{})
		_, err := s.OpenForEdit("ghost")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Mutations Require An Open Draft", func(t *testing.T) {
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{})
		assert.ErrorIs(t, s.SetTitle("x"), core.ErrNoSession)
		_, err := s.Commit(ctx)
		assert.ErrorIs(t, err, core.ErrNoSession)
	})
}

func TestSessionSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Fills Empty Title And Overwrites Category", func(t *testing.T) {
		fa := &fakeAssistant{suggestion: core.Suggestion{Title: "Suggested", Category: core.CategoryIdeas}}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("an app that syncs notes to paper"))

		require.NoError(t, s.RequestSuggestions(ctx))
		s.Wait()

		draft, _ := s.Draft()
		assert.Equal(t, "Suggested", draft.Title)
		assert.Equal(t, core.CategoryIdeas, draft.Category)
	})

	t.Run("Keeps Existing Title", func(t *testing.T) {
		fa := &fakeAssistant{suggestion: core.Suggestion{Title: "Suggested", Category: core.CategoryIdeas}}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetTitle("Mine"))
		require.NoError(t, s.SetContent("content"))

		require.NoError(t, s.RequestSuggestions(ctx))
		s.Wait()

		draft, _ := s.Draft()
		assert.Equal(t, "Mine", draft.Title)
		assert.Equal(t, core.CategoryIdeas, draft.Category)
	})

	t.Run("Failure Leaves Draft Untouched", func(t *testing.T) {
		fa := &fakeAssistant{err: errors.New("remote timeout")}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetCategory(core.CategoryPersonal))
		require.NoError(t, s.SetContent("content"))
		before, _ := s.Draft()

		require.NoError(t, s.RequestSuggestions(ctx))
		s.Wait()

		after, _ := s.Draft()
		assert.Equal(t, before, after)
	})

	t.Run("Requires Content", func(t *testing.T) {
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: &fakeAssistant{}})
		_, err := s.OpenForCreate()
		require.NoError(t, err)

		assert.ErrorIs(t, s.RequestSuggestions(ctx), core.ErrEmptyDraft)
	})

	t.Run("Second Request While In Flight Is Rejected", func(t *testing.T) {
		fa := &fakeAssistant{gate: make(chan struct{})}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("content"))

		require.NoError(t, s.RequestSuggestions(ctx))
		assert.ErrorIs(t, s.RequestSuggestions(ctx), core.ErrAssistBusy)
		assert.ErrorIs(t, s.RequestEnhance(ctx), core.ErrAssistBusy)

		close(fa.gate)
		s.Wait()
	})

	t.Run("Stale Response After Discard Is Dropped", func(t *testing.T) {
		fa := &fakeAssistant{
			suggestion: core.Suggestion{Title: "Late", Category: core.CategoryUrgent},
			gate:       make(chan struct{}),
		}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("content"))
		require.NoError(t, s.RequestSuggestions(ctx))

		// The session moves on while the call is still outstanding.
		s.Discard()
		_, err = s.OpenForCreate()
		require.NoError(t, err)

		close(fa.gate)
		s.Wait()

		draft, _ := s.Draft()
		assert.Empty(t, draft.Title, "late response must not leak into the new draft")
		assert.Equal(t, core.CategoryGeneral, draft.Category)
	})

	t.Run("No Assistant Configured", func(t *testing.T) {
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{})
		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("content"))

		assert.ErrorIs(t, s.RequestSuggestions(ctx), core.ErrNoAssistant)
	})
}

func TestSessionEnhance(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces Content Wholesale", func(t *testing.T) {
		fa := &fakeAssistant{enhanced: "polished prose"}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("rough draft"))

		require.NoError(t, s.RequestEnhance(ctx))
		s.Wait()

		draft, _ := s.Draft()
		assert.Equal(t, "polished prose", draft.Content)
	})

	t.Run("Failure Keeps Content", func(t *testing.T) {
		fa := &fakeAssistant{err: errors.New("bad response")}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Assistant: fa})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("rough draft"))

		require.NoError(t, s.RequestEnhance(ctx))
		s.Wait()

		draft, _ := s.Draft()
		assert.Equal(t, "rough draft", draft.Content)
	})
}

func TestSessionExport(t *testing.T) {
	ctx := context.Background()

	t.Run("Delegates With Draft Fields", func(t *testing.T) {
		fe := &fakeExporter{}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Exporter: fe})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetTitle("Plan"))
		require.NoError(t, s.SetContent("the roadmap"))
		require.NoError(t, s.SetCategory(core.CategoryWork))

		data, err := s.Export(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Equal(t, "Plan", fe.lastDoc.Title)
		assert.Equal(t, "the roadmap", fe.lastDoc.Content)
		assert.Equal(t, core.CategoryWork, fe.lastDoc.Category)
	})

	t.Run("Empty Title Defaults", func(t *testing.T) {
		fe := &fakeExporter{}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Exporter: fe})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("body"))

		_, err = s.Export(ctx)
		require.NoError(t, err)
		assert.Equal(t, notes.DefaultExportTitle, fe.lastDoc.Title)
	})

	t.Run("Exporter Failure Propagates", func(t *testing.T) {
		fe := &fakeExporter{err: errors.New("render failed")}
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Exporter: fe})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("body"))

		_, err = s.Export(ctx)
		assert.Error(t, err)
	})

	t.Run("Requires Content", func(t *testing.T) {
		s, _ := newSession(t, &memStore{}, notes.SessionConfig{Exporter: &fakeExporter{}})
		_, err := s.OpenForCreate()
		require.NoError(t, err)

		_, err = s.Export(ctx)
		assert.ErrorIs(t, err, core.ErrEmptyDraft)
	})

	t.Run("Does Not Mutate Draft Or Repository", func(t *testing.T) {
		fe := &fakeExporter{}
		store := &memStore{}
		s, repo := newSession(t, store, notes.SessionConfig{Exporter: fe})

		_, err := s.OpenForCreate()
		require.NoError(t, err)
		require.NoError(t, s.SetContent("body"))
		before, _ := s.Draft()

		_, err = s.Export(ctx)
		require.NoError(t, err)

		after, _ := s.Draft()
		assert.Equal(t, before, after)
		assert.Equal(t, 0, repo.Len())
	})
}
