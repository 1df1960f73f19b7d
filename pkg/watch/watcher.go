package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrRunning is returned when Watch is called on a watcher that is already
// watching.
var ErrRunning = errors.New("watcher already running")

// Config contains configuration for the file watcher.
type Config struct {
	// Paths are the files to watch. Their parent directories are watched so
	// editors that save by renaming a temporary file are still noticed.
	Paths []string

	// Debounce is the quiet period after the last event before the callback
	// runs. Default: 200ms
	Debounce time.Duration
}

// Watcher reports changes to a fixed set of files.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	config  Config

	// files maps each watched absolute path to its own debouncer, so a
	// burst on one file never swallows a change to another.
	files map[string]*Debouncer

	mu      sync.Mutex
	running bool
}

// New creates a watcher for cfg.Paths.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher: fsw,
		logger:  logger.With("component", "watch"),
		config:  cfg,
		files:   make(map[string]*Debouncer),
	}

	dirs := make(map[string]struct{})
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		if _, ok := w.files[abs]; !ok {
			w.files[abs] = NewDebouncer(cfg.Debounce)
		}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
		w.logger.Debug("watching directory", "path", dir)
	}

	return w, nil
}

// Watch blocks until ctx is done, calling onChange with the path of the
// changed file once events have settled. Callbacks never overlap.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	var callMu sync.Mutex
	w.logger.Info("file watcher started",
		"files", len(w.files),
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.stopDebouncers()
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			debounce, ok := w.debouncerFor(event)
			if !ok {
				continue
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			name := event.Name
			debounce.Trigger(func() {
				callMu.Lock()
				defer callMu.Unlock()

				if err := onChange(name); err != nil {
					w.logger.Error("change handler failed", "path", name, "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.stopDebouncers()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// debouncerFor returns the debouncer of the watched file event touches.
func (w *Watcher) debouncerFor(event fsnotify.Event) (*Debouncer, bool) {
	if event.Op == fsnotify.Chmod {
		return nil, false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return nil, false
	}
	d, ok := w.files[abs]
	return d, ok
}

func (w *Watcher) stopDebouncers() {
	for _, d := range w.files {
		d.Stop()
	}
}
