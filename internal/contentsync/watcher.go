package contentsync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/folio/core/logger"
)

// Syncer pushes externally changed collections to the mirror.
type Syncer interface {
	Collections() []string
	SyncExternal(ctx context.Context, collection string) (bool, error)
}

// Watcher observes the content directory and hands debounced changes of
// collection files to a Syncer.
type Watcher struct {
	dir      string
	syncer   Syncer
	debounce time.Duration
	logger   *slog.Logger

	known map[string]struct{}
	ready chan struct{}

	mu      sync.Mutex
	running bool
	timers  map[string]*time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a changed file is synced.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher returns a watcher over the collection files of syncer in dir.
func NewWatcher(dir string, syncer Syncer, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      dir,
		syncer:   syncer,
		debounce: 500 * time.Millisecond,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		known:    make(map[string]struct{}),
		ready:    make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
	for _, name := range syncer.Collections() {
		w.known[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the directory is being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatchDir, err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return errors.Join(ErrWatchDir, err)
	}
	close(w.ready)

	w.logger.Info("content watcher started",
		logger.Component("contentsync"), slog.String("dir", w.dir), logger.Duration(w.debounce))

	fire := make(chan string, len(w.known))
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("content watcher stopped", logger.Component("contentsync"))
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if name, ok := w.collectionOf(ev); ok {
				w.schedule(ctx, name, fire)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", logger.Component("contentsync"), logger.Error(err))

		case name := <-fire:
			w.sync(ctx, name)
		}
	}
}

// collectionOf maps an event to a collection name. Temp files, unknown
// files and chmod-only events are ignored.
func (w *Watcher) collectionOf(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	base := filepath.Base(ev.Name)
	name, ok := strings.CutSuffix(base, ".json")
	if !ok {
		return "", false
	}
	_, known := w.known[name]
	return name, known
}

func (w *Watcher) schedule(ctx context.Context, name string, fire chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[name]; ok {
		t.Stop()
	}
	w.timers[name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()

		select {
		case fire <- name:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) sync(ctx context.Context, name string) {
	ran, err := w.syncer.SyncExternal(ctx, name)
	if err != nil {
		w.logger.Error("external change sync failed",
			logger.Component("contentsync"), logger.Collection(name), logger.Error(err))
		return
	}
	if ran {
		w.logger.Info("external change synced",
			logger.Component("contentsync"), logger.Collection(name))
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, t := range w.timers {
		t.Stop()
		delete(w.timers, name)
	}
}
