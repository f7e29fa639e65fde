package kosingester

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/jskos/source"
)

// eventChannelBuffer is the size of the watch event channel.
const eventChannelBuffer = 500

// Event reports a changed document under the watched directory.
type Event struct {
	// Path is the file path relative to the sources directory.
	Path string

	// AbsPath is the absolute file path.
	AbsPath string
}

// Watcher watches a sources directory for changed vocabulary documents
// and emits events for files matching the include patterns. Changes are
// debounced and suppressed when the file content hash is unchanged.
type Watcher struct {
	dir      string
	include  []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]struct{}

	// Hash-based change suppression
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan Event

	// Metrics
	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher for documents under dir matching the
// include patterns.
func NewWatcher(dir string, include []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if len(include) == 0 {
		include = []string{"**/*.json", "**/*.json.xz"}
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		dir:      dir,
		include:  include,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]struct{}),
		hashes:   make(map[string]string),
		events:   make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the sources directory for changes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Sources watcher started",
		"dir", w.dir,
		"debounce", w.debounce,
		"include", w.include)

	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents
// when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the content hash for a file, used to seed the cache
// during initial indexing.
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded content hash for a file.
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// matches reports whether a path relative to the sources directory
// matches any include pattern.
func (w *Watcher) matches(relPath string) bool {
	for _, pattern := range w.include {
		ok, err := doublestar.PathMatch(pattern, relPath)
		if err != nil {
			w.logger.Warn("Invalid include pattern",
				"pattern", pattern,
				"error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// addWatchesRecursive adds watches to all directories under root,
// skipping hidden directories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && base != "." && path != root {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent accumulates a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	relPath, err := filepath.Rel(w.dir, path)
	if err != nil {
		return
	}

	if !w.matches(relPath) {
		// Watch newly created directories so documents added later
		// are still seen.
		if event.Has(fsnotify.Create) {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		// Deletions only clear the hash cache; there is nothing left
		// to ingest.
		w.hashMu.Lock()
		delete(w.hashes, relPath)
		w.hashMu.Unlock()
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected",
		"path", relPath,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make([]string, 0, len(w.pending))
	for path := range w.pending {
		toProcess = append(toProcess, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for _, path := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, err := filepath.Rel(w.dir, path)
		if err != nil {
			continue
		}

		// The file may have been removed between the event and the
		// flush.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to read file for hash check",
				"path", relPath,
				"error", err)
			continue
		}

		newHash := source.ContentHash(content)
		oldHash, hadHash := w.GetHash(relPath)
		if hadHash && oldHash == newHash {
			// Content unchanged, skip.
			continue
		}
		w.SetHash(relPath, newHash)

		w.sendEvent(Event{Path: relPath, AbsPath: path})
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "path", event.Path)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

// DroppedEvents returns the number of events dropped due to channel
// overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}
