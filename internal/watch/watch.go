// Package watch reruns an operation whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vvka-141/appgen/pkg/appgen"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher calls run after each change to one file.
type Watcher struct {
	path     string
	logger   appgen.Logger
	debounce time.Duration
	run      func(ctx context.Context) error
	ready    chan struct{}
}

// New creates a watcher for path.
func New(path string, logger appgen.Logger, run func(ctx context.Context) error) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		logger:   logger,
		debounce: DefaultDebounce,
		run:      run,
		ready:    make(chan struct{}),
	}
}

// WithDebounce sets the quiet period before run is called.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file so that editors which replace the file on save keep working.
// Errors returned by run are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	close(w.ready)
	w.logger.Info("watching %s for changes (Ctrl+C to stop)", w.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			w.logger.Verbose("change detected: %s", ev)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error: %v", err)

		case <-fire:
			fire = nil
			if err := w.run(ctx); err != nil {
				w.logger.Error("%v", err)
			}
		}
	}
}
