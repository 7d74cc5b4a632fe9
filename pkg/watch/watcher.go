// Package watch re-lints files as they change on disk.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/parser"
)

// DefaultDebounce groups the burst of events editors emit for one save.
const DefaultDebounce = 200 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	Debounce time.Duration
	// Discover selects the source files that trigger Changed and Removed.
	Discover lint.DiscoverOptions
	// ConfigFiles are base names that trigger ConfigChanged.
	ConfigFiles []string
}

// Events are the callbacks a Watcher invokes from its own goroutines. Nil
// callbacks are skipped.
type Events struct {
	Changed       func(path string)
	Removed       func(path string)
	ConfigChanged func(path string)
}

// Watcher watches a directory tree and reports debounced changes.
//
// **Features:**
//   - Debouncing per path, so an editor save triggers one callback
//   - Directories created after Start are watched too
//   - Excluded directories are never watched
//
// **Usage:**
//
//	w, err := watch.New(root, opts, watch.Events{Changed: relint}, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	root    string
	watcher *fsnotify.Watcher
	options Options
	events  Events
	logger  *slog.Logger

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex
	pending        sync.WaitGroup

	// Lifecycle
	stopChan chan struct{}
	loopDone chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// New creates a watcher for root. A zero Debounce uses DefaultDebounce.
func New(root string, options Options, events Events, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if err := options.Discover.ValidatePatterns(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		root:           filepath.Clean(root),
		watcher:        fsw,
		options:        options,
		events:         events,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
		loopDone:       make(chan struct{}),
	}, nil
}

// Start watches root and every directory below it that is not excluded.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return errors.New("watcher already started")
	}

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.started = true

	w.logger.Info("file watcher started", "root", w.root)
	go w.eventLoop()
	return nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.excludedDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if path == w.root {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Stop stops watching and waits for callbacks in flight. Safe to call more
// than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	close(w.stopChan)
	w.mu.Unlock()

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		if timer.Stop() {
			w.pending.Done()
		}
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.loopDone
	}
	w.pending.Wait()

	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.loopDone)
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	if slices.Contains(w.options.ConfigFiles, filepath.Base(path)) {
		if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
			w.debounce(path, w.events.ConfigChanged)
		}
		return
	}

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		if isDir(path) {
			if !w.excludedDir(path) {
				if err := w.addTree(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
		if w.selected(path) {
			w.debounce(path, w.events.Changed)
		}

	case event.Op&fsnotify.Write == fsnotify.Write:
		if w.selected(path) {
			w.debounce(path, w.events.Changed)
		}

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if w.selected(path) {
			w.debounce(path, w.events.Removed)
		}
	}
}

// debounce schedules fn(path) after the debounce delay. A newer event for the
// same path replaces the pending one, whatever its kind.
func (w *Watcher) debounce(path string, fn func(string)) {
	if fn == nil {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	if timer, exists := w.debounceTimers[path]; exists && timer.Stop() {
		w.pending.Done()
	}

	w.pending.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.options.Debounce, func() {
		defer w.pending.Done()

		w.debounceMu.Lock()
		if w.debounceTimers[path] == timer {
			delete(w.debounceTimers, path)
		}
		w.debounceMu.Unlock()

		fn(path)
	})
	w.debounceTimers[path] = timer
}

// selected reports whether path is a source file the discovery options pick.
func (w *Watcher) selected(path string) bool {
	if parser.DetectDialect(path) == parser.DialectUnknown {
		return false
	}
	rel := w.rel(path)
	return !w.options.Discover.Excluded(rel) && w.options.Discover.Included(rel)
}

func (w *Watcher) excludedDir(path string) bool {
	rel := w.rel(path)
	return w.options.Discover.Excluded(rel) || w.options.Discover.Excluded(rel+"/x")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// GetStats returns watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	running := w.started && !w.stopped
	w.mu.Unlock()

	return Stats{
		PendingEvents: pending,
		WatchedPaths:  len(w.watcher.WatchList()),
		IsRunning:     running,
	}
}

// Stats contains watcher statistics.
type Stats struct {
	PendingEvents int
	WatchedPaths  int
	IsRunning     bool
}
