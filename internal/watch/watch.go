// Package watch re-runs a conversion whenever its inputs change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docdoc/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before rebuilding.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Roots are watched recursively.
	Roots []string
	// Ignore lists files and directory trees whose events never trigger a
	// rebuild, typically the output tree.
	Ignore   []string
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher calls a build function after changes below its roots settle.
type Watcher struct {
	opts    Options
	build   func(context.Context) error
	watcher *fsnotify.Watcher

	mu     sync.RWMutex
	ignore []string
}

// New creates a Watcher. Nothing is watched until Run.
func New(opts Options, build func(context.Context) error) (*Watcher, error) {
	if len(opts.Roots) == 0 {
		return nil, fmt.Errorf("watch: no roots given")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	w := &Watcher{opts: opts, build: build}
	if err := w.Ignore(opts.Ignore...); err != nil {
		return nil, err
	}
	return w, nil
}

// Ignore adds files or directory trees whose events never trigger a rebuild.
// Builds register what they write here so their own output does not wake
// the watcher again.
func (w *Watcher) Ignore(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch: resolve %s: %w", p, err)
		}
		if !slices.Contains(w.ignore, abs) {
			w.ignore = append(w.ignore, abs)
		}
	}
	return nil
}

// Run watches until ctx is done. Build errors are logged and watching
// continues; only watcher setup failures are returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()
	w.watcher = fw

	for _, root := range w.opts.Roots {
		if err := w.addDirsRecursive(root); err != nil {
			return err
		}
	}

	rebuildReq, trigger, stop := debouncer(w.opts.Debounce)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuildReq:
			w.rebuild(ctx)
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	w.opts.Logger.Info("Change detected; converting")
	if err := w.build(ctx); err != nil {
		w.opts.Logger.Warn("Conversion failed", logfields.Error(err))
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event, trigger func()) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(ev.Name)
		}
	}
	w.opts.Logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return w.watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.opts.Logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// ignored reports whether path lies inside one of the ignored trees.
func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) shouldIgnore(path string) bool {
	return w.ignored(path) || isScratchFile(path)
}

// isScratchFile matches hidden, editor swap and OS bookkeeping files.
func isScratchFile(path string) bool {
	base := filepath.Base(path)
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

// debouncer returns a channel that receives once per quiet period after the
// last trigger call, the trigger itself and a stop function.
func debouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
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
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}
