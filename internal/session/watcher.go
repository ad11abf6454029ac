package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherFailed indicates the filesystem watcher could not start.
var ErrWatcherFailed = errors.New("failed to initialize session watcher")

// Event describes an external change to the session file.
type Event struct {
	// Session is the freshly loaded session, nil when the file was
	// removed or is no longer valid.
	Session *Session
}

// Watcher reports external changes to the session file so a running
// process notices another shelfstream instance logging in or out,
// the same way browser tabs observe each other's storage writes.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	events  chan Event
	stop    chan struct{}
}

// NewWatcher creates a watcher over the store's session file.
func NewWatcher(store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	return &Watcher{
		store:   store,
		watcher: fw,
		events:  make(chan Event, 4),
		stop:    make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched rather than
// the file itself so create and remove are seen too.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go w.loop(ctx)
	return nil
}

// Events returns the change channel.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop tears down the watcher.
func (w *Watcher) Stop() {
	close(w.stop)
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	target := w.store.Path()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(target) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			sess, err := w.store.Load()
			if err != nil {
				sess = nil
			}
			select {
			case w.events <- Event{Session: sess}:
			default:
				// Drop when the consumer lags; the next change will
				// carry the current state anyway.
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
