// Package logdomsig is a concrete stand-in for the spec's "external
// signal handler calls reopen_all" collaborator (spec §6): instead of
// (or in addition to) a SIGHUP handler, a Watcher observes each
// backend's target file for external rename/remove — the rotation
// signature an outside log-rotation tool produces — and reopens every
// backend in the registry when it sees one.
package logdomsig

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/zysyl/logdom"
)

// Watcher drives logdom.Registry.ReopenAll off filesystem rename/
// remove events on a set of watched targets, rather than an in-band
// protocol (spec §6 names none).
type Watcher struct {
	registry *logdom.Registry
	watcher  *fsnotify.Watcher
	onReopen func([]logdom.BackendError)

	mu   sync.Mutex
	dirs map[string]struct{}

	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Watcher bound to registry. onReopen, if non-nil, is
// called with the partial-failure list every time a filesystem event
// triggers a ReopenAll (mirroring the per-backend failure reporting
// ReopenAll already does administratively).
func New(registry *logdom.Registry, onReopen func([]logdom.BackendError)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		registry: registry,
		watcher:  fw,
		onReopen: onReopen,
		dirs:     make(map[string]struct{}),
		done:     make(chan struct{}),
	}, nil
}

// WatchTarget adds target's containing directory to the watch set.
// fsnotify watches directories, not individual files, because a
// rotation tool typically renames the file out from under its
// original path — watching the file handle itself would miss that.
func (w *Watcher) WatchTarget(target string) error {
	dir := filepath.Dir(target)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, already := w.dirs[dir]; already {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = struct{}{}
	return nil
}

// Run processes filesystem events until ctx is canceled or Stop is
// called. Any Rename or Remove event triggers a full ReopenAll: the
// spec's reopen_all is cheap and idempotent for backends that weren't
// actually touched, so there is no need to correlate the event back
// to a specific backend.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				failures := w.registry.ReopenAll(ctx)
				if w.onReopen != nil {
					w.onReopen(failures)
				}
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Stop ends Run and releases the underlying filesystem watches. Safe
// to call more than once; only the first call has effect.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.done) })
	return w.watcher.Close()
}
