package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// changeChannelBuffer is the size of the change channel.
	changeChannelBuffer = 16

	defaultDebounce = 500 * time.Millisecond
)

// WatchConfig configures reference document watching.
type WatchConfig struct {
	// DebounceDelay is how long to collect changes before reporting them.
	DebounceDelay string `yaml:"debounce_delay" env:"GPSRGEN_WATCH_DEBOUNCE"`

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay: "500ms",
		ExcludeDirs:   []string{".git", "node_modules", "vendor", "output"},
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return defaultDebounce
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}

// Change is one debounced batch of document edits.
type Change struct {
	// Paths are the absolute paths whose content changed, was created or
	// was removed.
	Paths []string
}

// Watcher watches a directory tree for reference document edits and reports
// them in debounced batches. Writes that leave the content unchanged are
// ignored.
type Watcher struct {
	config  WatchConfig
	root    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	exclude map[string]bool
	match   func(path string) bool

	pendingMu sync.Mutex
	pending   map[string]struct{}

	hashMu sync.Mutex
	hashes map[string]string

	changes chan Change
}

// NewWatcher creates a watcher rooted at root.
func NewWatcher(config WatchConfig, root string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	exclude := make(map[string]bool, len(config.ExcludeDirs))
	for _, dir := range config.ExcludeDirs {
		exclude[dir] = true
	}

	return &Watcher{
		config:  config,
		root:    root,
		watcher: fsw,
		logger:  logger,
		exclude: exclude,
		pending: make(map[string]struct{}),
		hashes:  make(map[string]string),
		changes: make(chan Change, changeChannelBuffer),
	}, nil
}

// WithFilter restricts reporting to document files for which match returns
// true. Call before Start.
func (w *Watcher) WithFilter(match func(path string) bool) *Watcher {
	w.match = match
	return w
}

// Changes returns the channel of change batches. It is closed when the
// watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Seed records the current content hash of each path so the first write
// that does not alter content is not reported.
func (w *Watcher) Seed(paths []string) {
	for _, p := range paths {
		if content, err := os.ReadFile(p); err == nil {
			w.setHash(p, ContentHash(content))
		}
	}
}

// Start adds watches below the root and begins processing events.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Document watcher started",
		"root", w.root,
		"debounce", w.config.GetDebounceDelay())
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if w.exclude[base] || (strings.HasPrefix(base, ".") && path != root) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.changes)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
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
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addWatchesRecursive(event.Name)
			return
		}
	}
	if !w.accepts(event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = struct{}{}
	w.pendingMu.Unlock()
}

func (w *Watcher) accepts(path string) bool {
	if !IsDocumentFile(path) {
		return false
	}
	return w.match == nil || w.match(path)
}

func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	var changed []string
	for _, p := range paths {
		if w.contentChanged(p) {
			changed = append(changed, p)
		}
	}
	if len(changed) == 0 {
		return
	}

	select {
	case w.changes <- Change{Paths: changed}:
	case <-ctx.Done():
	}
}

// contentChanged compares the file's hash with the last one seen. A file
// that no longer exists counts as changed once.
func (w *Watcher) contentChanged(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		w.hashMu.Lock()
		_, known := w.hashes[path]
		delete(w.hashes, path)
		w.hashMu.Unlock()
		return known || os.IsNotExist(err)
	}

	hash := ContentHash(content)
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	if old, ok := w.hashes[path]; ok && old == hash {
		return false
	}
	w.hashes[path] = hash
	return true
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}
