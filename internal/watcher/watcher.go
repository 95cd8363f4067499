// Package watcher reloads a file when it changes on disk.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is the quiet period after the last write before onChange runs
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a file for changes
type Watcher struct {
	path     string
	onChange func(path string)
	debounce time.Duration
	logger   *log.Logger
}

// New creates a new file watcher
func New(path string, onChange func(path string)) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   log.Default(),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets the logger
func (w *Watcher) WithLogger(l *log.Logger) *Watcher {
	if l != nil {
		w.logger = l
	}
	return w
}

// Watch blocks until ctx is cancelled, calling onChange after each burst of
// writes to the file settles.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer fw.Close()

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)
	if err := fw.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}

	w.logger.Info("watching for changes", "path", w.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.logger.Debug("file changed", "path", w.path)
				w.onChange(w.path)
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
