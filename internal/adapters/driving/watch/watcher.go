// Package watch uploads PDFs that appear in a directory.
//
// A file is uploaded once it has been quiet for the settle period, so
// partially copied files are not sent. Each path is uploaded at most once
// per watcher.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/logger"
)

// DefaultSettle is how long a file must be unchanged before upload.
const DefaultSettle = time.Second

// Uploader sends a local file to the backend.
type Uploader interface {
	Upload(ctx context.Context, path string) (*domain.Document, error)
}

// Result reports the outcome of one upload.
type Result struct {
	Path     string
	Document *domain.Document
	Err      error
}

// Config holds configuration for a Watcher.
type Config struct {
	// Dir is the directory to watch. Required.
	Dir string

	// Settle is the quiet period before upload (default: DefaultSettle).
	Settle time.Duration

	// OnResult is called after each upload attempt. Optional.
	OnResult func(Result)
}

// Watcher watches a directory and uploads new PDFs.
type Watcher struct {
	dir      string
	settle   time.Duration
	uploader Uploader
	onResult func(Result)

	mu      sync.Mutex
	pending map[string]*time.Timer
	done    map[string]struct{}
}

// New creates a watcher.
func New(uploader Uploader, cfg Config) (*Watcher, error) {
	if uploader == nil {
		return nil, errors.New("watch: uploader is required")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: watch directory is required", domain.ErrInvalidInput)
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", cfg.Dir, err)
	}

	return &Watcher{
		dir:      dir,
		settle:   cfg.Settle,
		uploader: uploader,
		onResult: cfg.OnResult,
		pending:  make(map[string]*time.Timer),
		done:     make(map[string]struct{}),
	}, nil
}

// Dir returns the absolute watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until ctx is cancelled. Files already in the directory are
// ignored.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	ready := make(chan string)
	defer w.stopTimers()

	logger.Debug("watch: watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.touch(ctx, event.Name, ready)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case path := <-ready:
			w.upload(ctx, path)
		}
	}
}

// touch (re)starts the settle timer for path.
func (w *Watcher) touch(ctx context.Context, path string, ready chan<- string) {
	if !isPDF(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, uploaded := w.done[path]; uploaded {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) upload(ctx context.Context, path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.done[path] = struct{}{}
	w.mu.Unlock()

	doc, err := w.uploader.Upload(ctx, path)
	if err != nil {
		logger.Warn("watch: upload %s: %v", filepath.Base(path), err)
	} else {
		logger.Debug("watch: uploaded %s as %d", filepath.Base(path), doc.ID)
	}

	if w.onResult != nil {
		w.onResult(Result{Path: path, Document: doc, Err: err})
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func isPDF(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".pdf")
}
