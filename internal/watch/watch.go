// Package watch re-runs detection when files that influence it change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ruminaider/presetctl/internal/detect"
	"go.uber.org/zap"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher watches a repository tree and calls OnChange with the batch of
// changed paths once events settle for the debounce interval.
type Watcher struct {
	root     string
	onChange func(paths []string)
	debounce time.Duration
	ignored  map[string]bool
	logger   *zap.Logger

	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	running bool
	dirs    map[string]bool
	pending map[string]struct{}
	last    time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long events must settle before OnChange fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnore skips directories with these names in addition to detect.DefaultIgnore.
func WithIgnore(names ...string) Option {
	return func(w *Watcher) {
		for _, n := range names {
			if n = strings.Trim(strings.TrimSpace(n), "/"); n != "" {
				w.ignored[n] = true
			}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for root. It does not start watching.
func New(root string, onChange func(paths []string), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		onChange: onChange,
		debounce: defaultDebounce,
		ignored:  make(map[string]bool),
		logger:   zap.NewNop(),
		fsw:      fsw,
		dirs:     make(map[string]bool),
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, d := range detect.DefaultIgnore {
		w.ignored[d] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start adds every non-ignored directory under root and begins the event
// loop in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.ignored[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return err
		}
		w.mu.Lock()
		w.dirs[p] = true
		w.mu.Unlock()
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	rel = filepath.ToSlash(rel)

	relevant := false
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.ignored[info.Name()] {
				return
			}
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watching new directory", zap.String("dir", rel), zap.Error(err))
			}
			relevant = true
		} else {
			relevant = detect.IsSignal(rel)
		}
	case event.Has(fsnotify.Write):
		relevant = detect.IsSignal(rel)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		relevant = detect.IsSignal(rel) || w.forgetDir(event.Name)
	}
	if !relevant {
		return
	}

	w.logger.Debug("change", zap.String("path", rel), zap.String("op", event.Op.String()))
	w.mu.Lock()
	w.pending[rel] = struct{}{}
	w.last = time.Now()
	w.mu.Unlock()
}

// forgetDir reports whether name was a watched directory and stops tracking
// it. fsnotify drops its own watch on removal, so WatchList alone can miss it.
func (w *Watcher) forgetDir(name string) bool {
	w.mu.Lock()
	known := w.dirs[name]
	delete(w.dirs, name)
	w.mu.Unlock()
	if known {
		return true
	}
	for _, p := range w.fsw.WatchList() {
		if p == name {
			return true
		}
	}
	return false
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 || time.Since(w.last) < w.debounce {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	if w.onChange != nil {
		w.onChange(paths)
	}
}
