// Package watch re-runs a handler when a component tree changes. Bursts of
// filesystem events are debounced into one run and runs never overlap.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/logger"
)

// DefaultDebounce collapses editor save bursts into one run
const DefaultDebounce = 300 * time.Millisecond

// Handler is called after a debounced change
type Handler func(ctx context.Context) error

// Options describes what to watch
type Options struct {
	// Root is the component root; it and each immediate subdirectory are watched.
	Root string
	// Files are extra individual files to watch, such as the config file.
	Files []string
	// Ignore lists files whose events never trigger a run, such as the
	// generated output (including its temporary files).
	Ignore []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	Logger   *zap.SugaredLogger
}

// Watcher watches a component tree
type Watcher struct {
	root    string
	files   map[string]struct{}
	ignore  []string
	handler Handler
	log     *zap.SugaredLogger
	fsw     *fsnotify.Watcher

	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration

	runMu sync.Mutex // serializes handler runs
}

// New registers the watches. Events are only consumed once Run is called.
func New(opts Options, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		root:           filepath.Clean(opts.Root),
		files:          make(map[string]struct{}),
		handler:        handler,
		log:            logger.OrNop(opts.Logger),
		fsw:            fsw,
		debouncePeriod: opts.Debounce,
	}
	if w.debouncePeriod <= 0 {
		w.debouncePeriod = DefaultDebounce
	}
	for _, p := range opts.Ignore {
		w.ignore = append(w.ignore, filepath.Clean(p))
	}

	if err := w.addTree(); err != nil {
		fsw.Close()
		return nil, err
	}
	for _, f := range opts.Files {
		if f == "" {
			continue
		}
		f = filepath.Clean(f)
		w.files[f] = struct{}{}
		// Watch the directory: editors often replace files instead of writing them.
		if err := fsw.Add(filepath.Dir(f)); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", f)
		}
	}
	return w, nil
}

// addTree watches the root and its immediate subdirectories
func (w *Watcher) addTree() error {
	if err := w.fsw.Add(w.root); err != nil {
		return errors.Wrapf(err, "failed to watch %s", w.root)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return errors.Wrapf(err, "failed to list %s", w.root)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(w.root, e.Name())
		if err := w.fsw.Add(dir); err != nil {
			w.log.Warnw("Cannot watch component directory", logger.FieldPath, dir, logger.FieldError, err)
		}
	}
	return nil
}

// Run consumes events until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	defer w.fsw.Close()

	w.log.Infow("Watching for changes", logger.FieldPath, w.root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.trackNewDirectory(event)

			w.log.Debugw("Change detected",
				logger.FieldFile, event.Name,
				logger.FieldOperation, event.Op.String())
			w.schedule(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// relevant filters out noise and the watcher's own output
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.ignored(name) {
		return false
	}
	if _, ok := w.files[name]; ok {
		return true
	}

	dir := filepath.Dir(name)
	return name == w.root || dir == w.root || filepath.Dir(dir) == w.root
}

func (w *Watcher) ignored(name string) bool {
	for _, p := range w.ignore {
		if name == p {
			return true
		}
		// atomic writes stage the output as .<name>.*.tmp next to it
		if filepath.Dir(name) == filepath.Dir(p) &&
			strings.HasPrefix(filepath.Base(name), "."+filepath.Base(p)+".") &&
			strings.HasSuffix(name, ".tmp") {
			return true
		}
	}
	return false
}

// trackNewDirectory starts watching a component directory created under root
func (w *Watcher) trackNewDirectory(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) || filepath.Dir(filepath.Clean(event.Name)) != w.root {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(event.Name); err != nil {
		w.log.Warnw("Cannot watch component directory", logger.FieldPath, event.Name, logger.FieldError, err)
	}
}

// schedule debounces rapid changes into a single run
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		w.fire(ctx)
	})
}

func (w *Watcher) fire(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := w.handler(ctx); err != nil {
		w.log.Errorw("Regeneration failed",
			logger.FieldErrorKind, string(errors.KindOf(err)),
			logger.FieldError, err)
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}
