package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of filesystem events (editors often
// write, chmod and rename in quick succession).
const debounceWindow = 50 * time.Millisecond

// Watch implements core.Watcher. The blob file's parent directory is
// observed by a lifecycle worker; the returned channel signals on
// each change and closes when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	w := newWatchWorker(s)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w.out, nil
}

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	out       chan struct{}
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(s *Store) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("file-watcher"),
		store:      s,
		out:        make(chan struct{}, 1),
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	dir := filepath.Dir(w.store.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceWindow)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *watchWorker) run(ctx context.Context) error {
	defer w.watcher.Close()

	err := w.eventLoop(ctx)

	// Quiesce in-flight debounce timers before the channel closes.
	w.debouncer.stop()
	close(w.out)
	return err
}

func (w *watchWorker) eventLoop(ctx context.Context) error {
	blob := filepath.Base(w.store.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			name := filepath.Base(event.Name)
			// Atomic saves land via rename from a temp file; skip the
			// temp files themselves.
			if strings.HasPrefix(name, TempFilePrefix) {
				continue
			}
			if name != blob {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				w.store.logger.Debug("notes file changed", "op", event.Op.String())
				w.debouncer.trigger(w.notify)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *watchWorker) notify() {
	select {
	case w.out <- struct{}{}:
	default:
	}
}

// debouncer collapses a burst of triggers into a single callback
// after a quiet window. Callbacks run under the mutex; after stop
// returns, no callback runs again, so a channel guarded by stop can
// be closed safely.
type debouncer struct {
	window time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// trigger (re)arms the timer; fn fires once the window elapses with
// no further triggers.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.closed {
			return
		}
		fn()
	})
}

// stop disarms the timer and blocks further callbacks. Stop on a
// fired timer does not wait for its callback, so a callback already
// scheduled re-checks closed under the mutex instead.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
