package notes

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jotvault/jot/pkg/core"
)

// SessionState is the lifecycle state of an editor session.
type SessionState string

const (
	StateClosed       SessionState = "closed"
	StateDraftNew     SessionState = "draft-new"
	StateDraftEditing SessionState = "draft-editing"
)

// DefaultExportTitle is used when a draft is exported without a title.
const DefaultExportTitle = "Untitled Note"

// Session holds the single note currently being edited: a draft,
// either new or an independent copy of a stored note. The draft is
// invisible to queries until Commit writes it into the repository.
//
// Assistant calls run asynchronously and are serialized per session:
// at most one may be in flight. There is no cancellation; a
// generation counter makes late-arriving responses detectably stale
// so they cannot resurrect a draft that was committed or discarded.
type Session struct {
	mu        sync.Mutex
	repo      *Repository
	assistant core.Assistant
	exporter  core.Exporter
	clock     core.Clock
	logger    *slog.Logger
	newID     func() string

	state SessionState
	draft core.Note
	busy  bool
	gen   uint64
	wg    sync.WaitGroup
}

// SessionConfig holds the dependencies for a Session. Assistant and
// Exporter are optional; the corresponding operations report
// ErrNoAssistant / ErrNoExporter when absent.
type SessionConfig struct {
	Assistant core.Assistant
	Exporter  core.Exporter
	Clock     core.Clock
	Logger    *slog.Logger
	NewID     func() string
}

// NewSession creates a closed editor session over the repository.
func NewSession(repo *Repository, cfg SessionConfig) *Session {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Session{
		repo:      repo,
		assistant: cfg.Assistant,
		exporter:  cfg.Exporter,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		newID:     cfg.NewID,
		state:     StateClosed,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the current draft, if one is open.
func (s *Session) Draft() (core.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return core.Note{}, false
	}
	return s.draft, true
}

// OpenForCreate starts a new empty draft with a freshly allocated ID.
// The draft is not in the repository until Commit.
func (s *Session) OpenForCreate() (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateClosed {
		return core.Note{}, core.ErrSessionOpen
	}

	s.draft = core.Note{
		ID:        s.newID(),
		Category:  core.CategoryGeneral,
		UpdatedAt: s.clock().UnixMilli(),
	}
	s.state = StateDraftNew
	return s.draft, nil
}

// OpenForEdit starts a draft as an independent copy of a stored note.
// Mutations do not touch the persisted note until Commit.
func (s *Session) OpenForEdit(id string) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateClosed {
		return core.Note{}, core.ErrSessionOpen
	}

	n, ok := s.repo.Get(id)
	if !ok {
		return core.Note{}, core.ErrNotFound
	}

	s.draft = n
	s.state = StateDraftEditing
	return s.draft, nil
}

// SetTitle updates the draft title locally.
func (s *Session) SetTitle(title string) error {
	return s.mutate(func(n *core.Note) { n.Title = title })
}

// SetContent updates the draft content locally.
func (s *Session) SetContent(content string) error {
	return s.mutate(func(n *core.Note) { n.Content = content })
}

// SetCategory updates the draft category locally.
func (s *Session) SetCategory(c core.Category) error {
	if !c.Valid() {
		return core.ErrInvalidCategory
	}
	return s.mutate(func(n *core.Note) { n.Category = c })
}

// SetFavorite updates the draft favorite flag locally.
func (s *Session) SetFavorite(fav bool) error {
	return s.mutate(func(n *core.Note) { n.Favorite = fav })
}

func (s *Session) mutate(fn func(*core.Note)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return core.ErrNoSession
	}
	fn(&s.draft)
	return nil
}

// RequestSuggestions asks the assistant for metadata for the current
// draft content. The call runs in the background; on success the
// title is filled only if currently empty and the category is always
// overwritten when one was suggested. Failures are logged and leave
// the draft untouched. A second request while one is outstanding
// returns ErrAssistBusy.
func (s *Session) RequestSuggestions(ctx context.Context) error {
	content, gen, err := s.beginAssist()
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sug, err := s.assistant.SuggestMetadata(ctx, content)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.busy = false

		if gen != s.gen || s.state == StateClosed {
			s.logger.Debug("dropping stale suggestion response")
			return
		}
		if err != nil {
			s.logger.Warn("metadata suggestion failed", "error", err)
			return
		}
		if s.draft.Title == "" && sug.Title != "" {
			s.draft.Title = sug.Title
		}
		if sug.Category != "" && sug.Category.Valid() {
			s.draft.Category = sug.Category
		}
	}()
	return nil
}

// RequestEnhance asks the assistant to rewrite the draft content.
// On success the content is replaced wholesale; on failure it is left
// unchanged. Same concurrency guard as RequestSuggestions.
func (s *Session) RequestEnhance(ctx context.Context) error {
	content, gen, err := s.beginAssist()
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		enhanced, err := s.assistant.EnhanceContent(ctx, content)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.busy = false

		if gen != s.gen || s.state == StateClosed {
			s.logger.Debug("dropping stale enhance response")
			return
		}
		if err != nil {
			s.logger.Warn("content enhancement failed", "error", err)
			return
		}
		if enhanced != "" {
			s.draft.Content = enhanced
		}
	}()
	return nil
}

// beginAssist checks the assistant preconditions and claims the
// in-flight slot.
func (s *Session) beginAssist() (content string, gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return "", 0, core.ErrNoSession
	}
	if s.assistant == nil {
		return "", 0, core.ErrNoAssistant
	}
	if s.draft.Content == "" {
		return "", 0, core.ErrEmptyDraft
	}
	if s.busy {
		return "", 0, core.ErrAssistBusy
	}

	s.busy = true
	return s.draft.Content, s.gen, nil
}

// Wait blocks until no assistant call is in flight.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Commit writes the draft into the repository and closes the session.
// The stored note, with its refreshed UpdatedAt, is returned.
func (s *Session) Commit(ctx context.Context) (core.Note, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return core.Note{}, core.ErrNoSession
	}
	draft := s.draft
	s.mu.Unlock()

	n, err := s.repo.Upsert(ctx, draft)
	if err != nil {
		// Session stays open so the caller can retry or discard.
		return core.Note{}, err
	}

	s.mu.Lock()
	s.close()
	s.mu.Unlock()
	return n, nil
}

// Discard closes the session without persisting, regardless of draft
// mutations.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.close()
}

// close resets the session. Callers must hold the lock. Bumping the
// generation invalidates any in-flight assistant response.
func (s *Session) close() {
	s.state = StateClosed
	s.draft = core.Note{}
	s.gen++
}

// Export renders the current draft through the exporter. The draft
// and repository are not mutated; exporter failures propagate to the
// caller.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil, core.ErrNoSession
	}
	if s.exporter == nil {
		s.mu.Unlock()
		return nil, core.ErrNoExporter
	}
	if s.draft.Content == "" {
		s.mu.Unlock()
		return nil, core.ErrEmptyDraft
	}

	doc := core.Document{
		Title:     s.draft.Title,
		Content:   s.draft.Content,
		Category:  s.draft.Category,
		UpdatedAt: s.draft.UpdatedAt,
	}
	s.mu.Unlock()

	if doc.Title == "" {
		doc.Title = DefaultExportTitle
	}
	return s.exporter.Render(ctx, doc)
}
