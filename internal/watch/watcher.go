package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the deduplicated paths changed during one debounce
// window.
type Handler func(paths []string)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait for more changes before calling the
	// handler. Default: 100ms
	Debounce time.Duration

	// Filter selects the files worth reporting. Nil accepts every file.
	Filter func(path string) bool

	Logger *slog.Logger
}

// Watcher reports writes to source files below a set of roots.
//
// Editors often save by writing a temporary file and renaming it, so file
// roots are watched through their parent directory and events are filtered
// back to the file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	filter   func(string) bool
	logger   *slog.Logger

	files map[string]bool // explicitly watched files
	dirs  []string        // recursively watched directories
}

// New creates a watcher over roots, which may be files or directories.
// Directories are watched recursively, skipping hidden ones.
func New(roots []string, handler Handler, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		handler:  handler,
		debounce: opts.Debounce,
		filter:   opts.Filter,
		logger:   opts.Logger,
		files:    make(map[string]bool),
	}

	for _, root := range roots {
		if err := w.add(root); err != nil {
			fw.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		w.files[filepath.Clean(root)] = true
		return w.watcher.Add(filepath.Dir(root))
	}
	w.dirs = append(w.dirs, filepath.Clean(root))

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Run delivers batches of changes to the handler until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var batch []string
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 {
			w.handler(batch)
			batch = nil
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			path, ok := w.accept(event)
			if !ok {
				continue
			}
			w.logger.Debug("source changed", "path", path, "op", event.Op.String())
			if !slices.Contains(batch, path) {
				batch = append(batch, path)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timerC:
			flush()
		}
	}
}

// accept returns the cleaned path of a create or write event on a file the
// watcher cares about. New directories are added to the watch list.
func (w *Watcher) accept(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	path := filepath.Clean(event.Name)

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) && w.inDir(path) {
			if err := w.add(path); err != nil {
				w.logger.Warn("could not watch new directory", "path", path, "error", err)
			}
		}
		return "", false
	}

	if !w.files[path] && !w.inDir(path) {
		return "", false
	}
	if w.filter != nil && !w.filter(path) {
		return "", false
	}
	return path, true
}

// inDir reports whether path lies below one of the watched directories.
func (w *Watcher) inDir(path string) bool {
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
