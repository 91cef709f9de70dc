// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches a corpus file (through its parent directory, since exporters
// usually replace files rather than write them in place) or a corpus
// directory recursively, and debounces bursts of events per file: the
// callback fires once the file has been quiet for the debounce interval.
package fsnotify

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/corey/kokkai/internal/logger"
	"github.com/corey/kokkai/internal/ports"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Directories to ignore when watching.
var ignoreDirs = map[string]bool{
	".git":         true,
	".kokkai":      true,
	".venv":        true,
	"node_modules": true,
}

// corpusExts are the file types that can feed a run.
var corpusExts = map[string]bool{
	".jsonl": true,
	".json":  true,
	".yaml":  true,
	".yml":   true,
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw       *fsnotify.Watcher
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex
	debounce time.Duration

	tmu    sync.Mutex
	timers map[string]*time.Timer

	log *slog.Logger
}

// NewWatcher creates a new file system watcher. debounce <= 0 means
// DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fw:       fw,
		done:     make(chan struct{}),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		log:      logger.WithComponent("watcher"),
	}, nil
}

// Watch starts monitoring path. A file is watched on its own; a directory is
// watched recursively for corpus files.
// onChange is called with the absolute path of each changed file.
func (w *Watcher) Watch(path string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}

	var accept func(string) bool
	if info.IsDir() {
		err = filepath.Walk(absPath, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil // skip inaccessible paths
			}
			if fi.IsDir() {
				if ignoreDirs[fi.Name()] && p != absPath {
					return filepath.SkipDir
				}
				return w.fw.Add(p)
			}
			return nil
		})
		if err != nil {
			return err
		}
		accept = func(p string) bool { return !shouldIgnorePath(p) }
	} else {
		if err := w.fw.Add(filepath.Dir(absPath)); err != nil {
			return err
		}
		accept = func(p string) bool { return p == absPath }
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				p := event.Name

				// New subdirectories join the watch list.
				if info.IsDir() && event.Has(fsnotify.Create) {
					if fi, err := os.Stat(p); err == nil && fi.IsDir() {
						if !ignoreDirs[fi.Name()] {
							w.fw.Add(p)
						}
						continue
					}
				}

				if !accept(p) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(p, onChange)
				}

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// The watch stays active after an error event.
				w.log.Debug("watch error", "err", err)

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// schedule (re)arms the per-file timer.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.tmu.Lock()
	defer w.tmu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.tmu.Lock()
		delete(w.timers, path)
		w.tmu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		onChange(path)
	})
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)

	w.tmu.Lock()
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
	w.tmu.Unlock()

	return w.fw.Close()
}

// shouldIgnorePath returns true if the file path should not trigger onChange.
func shouldIgnorePath(path string) bool {
	if !corpusExts[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return false
}

var _ ports.Watcher = (*Watcher)(nil)
