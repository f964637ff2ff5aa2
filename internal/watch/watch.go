// Package watch reloads a property file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so editors
// that save through a rename are still seen. Bursts of events are collapsed
// into a single reload after a quiet period.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gstplayer/internal/logging"
	"gstplayer/internal/propdiff"
	"gstplayer/internal/treefile"
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithErrorHandler receives reload failures.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reloads a property file after it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(propdiff.Tree)
	onError  func(error)
	logger   *slog.Logger
	ready    chan struct{}
}

// New returns a Watcher for path. onChange receives each successfully
// reloaded tree.
func New(path string, debounce time.Duration, onChange func(propdiff.Tree), opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logging.NewNop(),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "watch")
	return w
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	close(w.ready)
	w.logger.Debug("watching property file", logging.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.Error(err))
		case <-timer.C:
			w.reload()
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	tree, err := treefile.Load(w.path)
	if err != nil {
		w.logger.Warn("property file reload failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "properties_reload_failed"),
			logging.String(logging.FieldErrorHint, "fix the file; the previous properties stay active"),
		)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.logger.Info("property file reloaded",
		logging.String("path", w.path),
		logging.Int("elements", len(tree)),
	)
	if w.onChange != nil {
		w.onChange(tree)
	}
}
