// Package watcher watches source roots and reports debounced batches of
// changes.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
	EventRename
)

// Event represents a file system event
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	case EventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// ChangeHandler is called with each debounced batch of events
type ChangeHandler func(events []Event)

// Filter reports whether a changed path is relevant. A nil Filter accepts
// every path that is not ignored.
type Filter func(path string) bool

// Config contains watcher configuration
type Config struct {
	DebounceMs     int      `json:"debounceMs" mapstructure:"debounceMs"`
	IgnorePatterns []string `json:"ignorePatterns" mapstructure:"ignore"`
}

// DefaultConfig returns the default watcher configuration
func DefaultConfig() Config {
	return Config{
		DebounceMs: 500,
		IgnorePatterns: []string{
			"*.swp",
			"*.tmp",
			"*~",
			".git/**",
			".readmegen/**",
		},
	}
}

// Watcher watches directory trees for changes
type Watcher struct {
	config  Config
	logger  *slog.Logger
	filter  Filter
	handler ChangeHandler

	fs    *fsnotify.Watcher
	batch *BatchDebouncer

	mu      sync.Mutex
	watched map[string]bool
	roots   []string
}

// New creates a watcher. Nothing is watched until Add is called.
func New(config Config, logger *slog.Logger, filter Filter, handler ChangeHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:  config,
		logger:  logger,
		filter:  filter,
		handler: handler,
		fs:      fsw,
		watched: make(map[string]bool),
	}
	w.batch = NewBatchDebouncer(time.Duration(config.DebounceMs)*time.Millisecond, w.emit)
	return w, nil
}

// Add watches path. Directories are watched recursively; for a file or a
// path that does not exist yet, the nearest existing parent directory is
// watched instead.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		w.addRoot(path)
		return w.addTree(path)
	}

	dir := filepath.Dir(path)
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			w.addRoot(dir)
			return w.addDir(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// addRoot records a directory that ignore patterns are anchored to.
func (w *Watcher) addRoot(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir = filepath.Clean(dir)
	for _, r := range w.roots {
		if r == dir {
			return
		}
	}
	w.roots = append(w.roots, dir)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("Cannot watch path", "path", path, "error", err.Error())
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.isIgnoredDir(path) {
			return filepath.SkipDir
		}
		return w.addDir(path)
	})
}

func (w *Watcher) addDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = true
	w.logger.Debug("Watching directory", "path", dir)
	return nil
}

// Run delivers events until ctx is done. Events still waiting for their
// quiet period when ctx is done are dropped.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("Starting file watcher", "debounceMs", w.config.DebounceMs, "dirs", len(w.Watched()))

	for {
		select {
		case <-ctx.Done():
			if n := w.batch.EventCount(); n > 0 {
				w.logger.Debug("Dropping pending changes", "eventCount", n)
			}
			w.batch.Cancel()
			w.logger.Info("File watcher stopped")
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if w.IsIgnored(ev.Name) {
		return
	}

	var typ EventType
	switch {
	case ev.Has(fsnotify.Create):
		typ = EventCreate
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("Cannot watch new directory", "path", ev.Name, "error", err.Error())
			}
			// Files created together with the directory produce no events of their own.
			w.batch.Add(Event{Type: typ, Path: ev.Name, Timestamp: time.Now()})
			return
		}
	case ev.Has(fsnotify.Write):
		typ = EventModify
	case ev.Has(fsnotify.Remove):
		typ = EventDelete
	case ev.Has(fsnotify.Rename):
		typ = EventRename
	default:
		return
	}

	if w.filter != nil && !w.filter(ev.Name) {
		return
	}
	w.batch.Add(Event{Type: typ, Path: ev.Name, Timestamp: time.Now()})
}

func (w *Watcher) emit(events []Event) {
	w.logger.Debug("Changes detected", "eventCount", len(events))
	if w.handler != nil {
		w.handler(events)
	}
}

// Close stops watching and drops pending events.
func (w *Watcher) Close() error {
	w.batch.Cancel()
	return w.fs.Close()
}

// IsIgnored checks if a path matches ignore patterns. Patterns without a
// slash match the base name anywhere; the rest are doublestar patterns
// matched against the path relative to the watch root that contains it.
func (w *Watcher) IsIgnored(path string) bool {
	base := filepath.Base(path)
	rel, rooted := w.relToRoot(path)
	for _, pattern := range w.config.IgnorePatterns {
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
			continue
		}
		if !rooted {
			continue
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// isIgnoredDir reports whether dir is ignored itself or is the base of a
// "dir/**" pattern, in which case nothing beneath it needs watching.
func (w *Watcher) isIgnoredDir(dir string) bool {
	if w.IsIgnored(dir) {
		return true
	}
	rel, rooted := w.relToRoot(dir)
	if !rooted {
		return false
	}
	for _, pattern := range w.config.IgnorePatterns {
		prefix, ok := strings.CutSuffix(pattern, "/**")
		if !ok {
			continue
		}
		if matched, _ := doublestar.Match(prefix, rel); matched {
			return true
		}
	}
	return false
}

// relToRoot returns path relative to the innermost watch root containing
// it, in slash form.
func (w *Watcher) relToRoot(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	best := ""
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if best == "" || len(root) > len(best) {
			best = root
		}
	}
	if best == "" {
		return "", false
	}
	rel, _ := filepath.Rel(best, path)
	return filepath.ToSlash(rel), true
}

// Watched returns the watched directories, sorted
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
