// Package watch re-runs a build whenever watched files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doctags/internal/logfields"
)

// DefaultDebounce is the quiet period before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one full build.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers debounced rebuilds from filesystem events. Rebuilds never
// overlap; changes arriving during a rebuild queue exactly one more.
type Watcher struct {
	rebuild  RebuildFunc
	dirs     []string
	files    []string
	ignore   []string
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDirs watches the given directory trees recursively.
func WithDirs(dirs ...string) Option {
	return func(w *Watcher) { w.dirs = append(w.dirs, cleanAll(dirs)...) }
}

// WithFile watches a single file. Its parent directory is watched so that
// editors replacing the file are noticed.
func WithFile(path string) Option {
	return func(w *Watcher) {
		if path != "" {
			w.files = append(w.files, cleanAll([]string{path})...)
		}
	}
}

// WithIgnore drops events below the given paths, e.g. the build's own output.
func WithIgnore(paths ...string) Option {
	return func(w *Watcher) { w.ignore = append(w.ignore, cleanAll(paths)...) }
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a Watcher calling rebuild on change.
func New(rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{rebuild: rebuild, debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := addDirsRecursive(fsw, dir, w.logger); err != nil {
			return err
		}
	}
	for _, file := range w.files {
		if err := fsw.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}
	}

	rebuildReq := make(chan struct{}, 1)
	trigger, stop := debouncer(w.debounce, rebuildReq)
	defer stop()

	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx, rebuildReq)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	w.logger.Info("Watching for changes", logfields.Count(len(w.dirs)+len(w.files)))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) worker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			w.logger.Info("Change detected; rebuilding")
			if err := w.rebuild(ctx); err != nil {
				w.logger.Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// debouncer returns a trigger that sends on req once events stop arriving
// for d, and a stop func cancelling a pending send.
func debouncer(d time.Duration, req chan<- struct{}) (trigger, stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if !w.relevant(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) && w.underDirs(ev.Name) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name, w.logger)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
	trigger()
}

func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	for _, file := range w.files {
		if path == file {
			return true
		}
	}
	if shouldIgnoreName(filepath.Base(path)) {
		return false
	}
	for _, ignored := range w.ignore {
		if within(path, ignored) {
			return false
		}
	}
	return w.underDirs(path)
}

func (w *Watcher) underDirs(path string) bool {
	for _, dir := range w.dirs {
		if within(filepath.Clean(path), dir) {
			return true
		}
	}
	return false
}

func within(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// shouldIgnoreName reports hidden, editor swap and OS metadata files.
func shouldIgnoreName(base string) bool {
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

func addDirsRecursive(fsw *fsnotify.Watcher, root string, logger *slog.Logger) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
