package session

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent carries freshly re-analyzed statistics for one session file.
type WatchEvent struct {
	Path  string
	Stats *Stats
}

// Watcher monitors a set of session files and re-analyzes each one when it
// changes. Re-analysis is always whole-file: the two-pass correlation
// needs the complete line set, so there is no incremental offset tracking.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	tracked   map[string]bool // session file paths being monitored
	mu        sync.Mutex

	Events chan WatchEvent
	Errors chan error
	done   chan struct{}
}

// NewWatcher creates a watcher for the given session files. The containing
// directories are watched so that appends, replacements and newly created
// sibling sessions are all seen.
func NewWatcher(files []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		tracked:   make(map[string]bool),
		Events:    make(chan WatchEvent, 100),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}

	for _, f := range files {
		w.tracked[f] = true
		_ = fsw.Add(filepath.Dir(f))
	}

	return w, nil
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// Tracked returns the monitored session file paths.
func (w *Watcher) Tracked() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.tracked))
	for path := range w.tracked {
		paths = append(paths, path)
	}
	return paths
}

// watchLoop handles fsnotify events
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Error channel full, drop
			}
		}
	}
}

// handleFSEvent processes a filesystem event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".jsonl") {
		return
	}

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		w.reanalyze(event.Name, false)

	case event.Op&fsnotify.Create == fsnotify.Create:
		// A new session appearing in a watched directory joins the set
		w.reanalyze(event.Name, true)
	}
}

// reanalyze re-runs the full analysis for path and emits the result.
func (w *Watcher) reanalyze(path string, adopt bool) {
	w.mu.Lock()
	tracked := w.tracked[path]
	if !tracked && adopt {
		w.tracked[path] = true
		tracked = true
	}
	w.mu.Unlock()

	if !tracked {
		return
	}

	stats, err := AnalyzeFile(path)
	if err != nil {
		// File may have been removed between event and read
		return
	}

	select {
	case w.Events <- WatchEvent{Path: path, Stats: stats}:
	default:
		// Event channel full
	}
}
