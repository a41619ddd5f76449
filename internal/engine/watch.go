package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/source"
)

// WatchOptions configure a Watcher.
type WatchOptions struct {
	Theme       ir.Theme
	DetectTheme bool
	Preprocess  bool

	// Settle is how long a file must go without events before it is
	// converted, so the CREATE and WRITE events of one save give one
	// conversion. Default: DefaultSettle.
	Settle time.Duration

	// OnItem, if set, is called after every conversion attempt from the
	// watch loop goroutine.
	OnItem func(Item)
}

// DefaultSettle is the quiet period used when WatchOptions.Settle is zero.
const DefaultSettle = 100 * time.Millisecond

// Watcher converts icon files under a tree as they are created or written.
type Watcher struct {
	engine *Engine
	root   string
	opts   WatchOptions
	watch  *fsnotify.Watcher

	// due holds changed icon files and when they may be converted.
	due   map[string]time.Time
	timer *time.Timer
}

// NewWatcher starts watching root and every directory below it. Events
// that arrive before Run is called are queued, not lost.
func (e *Engine) NewWatcher(root string, opts WatchOptions) (*Watcher, error) {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	w := &Watcher{
		engine: e,
		root:   root,
		opts:   opts,
		watch:  watch,
		due:    make(map[string]time.Time),
		timer:  time.NewTimer(time.Hour),
	}
	w.timer.Stop()
	if err := w.addTree(root); err != nil {
		watch.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and its subdirectories with the watcher.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watch.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.engine.logger.Debug("watching directory", "dir", path)
		return nil
	})
}

// Run processes file events until ctx is cancelled. It closes the
// watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watch.Close()
	defer w.timer.Stop()
	w.engine.logger.Info("watch started", "root", w.root, "run", w.engine.run.Token)

	for {
		select {
		case <-ctx.Done():
			w.engine.logger.Info("watch stopped")
			return nil

		case event, ok := <-w.watch.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case <-w.timer.C:
			w.flush(ctx, time.Now())

		case err, ok := <-w.watch.Errors:
			if !ok {
				return nil
			}
			w.engine.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create && isDir(event.Name):
		if err := w.addTree(event.Name); err != nil {
			w.engine.logger.Warn("watch new directory", "dir", event.Name, "error", err)
		}

	case event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write:
		if !source.IsIconFile(event.Name) {
			return
		}
		w.due[event.Name] = time.Now().Add(w.opts.Settle)
		w.schedule()

	case event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename:
		delete(w.due, event.Name)
		w.engine.logger.Debug("source removed", "path", event.Name)
	}
}

// schedule arms the timer for the earliest pending file.
func (w *Watcher) schedule() {
	var next time.Time
	for _, at := range w.due {
		if next.IsZero() || at.Before(next) {
			next = at
		}
	}
	w.timer.Stop()
	if !next.IsZero() {
		w.timer.Reset(time.Until(next))
	}
}

// flush converts every file whose quiet period ended by now, in path
// order, and re-arms the timer for the rest.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	var ready []string
	for path, at := range w.due {
		if !at.After(now) {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	for _, path := range ready {
		delete(w.due, path)
		w.convert(ctx, path)
	}
	w.schedule()
}

func (w *Watcher) convert(ctx context.Context, path string) {
	item := Item{Source: path}
	opts := w.engine.loadOptions(path, w.opts.Theme, w.opts.DetectTheme, w.opts.Preprocess)
	item.Result, item.Err = w.engine.ConvertSource(ctx, path, opts)
	if item.Err != nil {
		w.engine.logger.Warn("conversion failed", "source", path, "error", item.Err)
	}
	if w.opts.OnItem != nil {
		w.opts.OnItem(item)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
