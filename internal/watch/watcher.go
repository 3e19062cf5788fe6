// Package watch re-runs a job whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/addrcheck/pkg/log"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 100 * time.Millisecond

// Config holds configuration for a Watcher.
type Config struct {
	// Path is the file to watch. Its parent directory is watched so that
	// editors which replace the file on save are still noticed.
	Path string

	// Debounce is the quiet period after a change before the job runs.
	Debounce time.Duration
}

// Job is the work performed on start and after each change.
type Job func(ctx context.Context) error

// Watcher runs a Job once and then again after every change to a file.
type Watcher struct {
	path     string
	debounce time.Duration
	job      Job
	logger   log.Logger

	mu       sync.Mutex
	timer    *time.Timer
	runMu    sync.Mutex // held while the job runs
	running  sync.WaitGroup
	runCount int
	stopped  bool
}

// New creates a Watcher. It does not start watching until Run is called.
func New(cfg Config, job Job, logger log.Logger) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watch: path is required")
	}
	if job == nil {
		return nil, fmt.Errorf("watch: job is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve path: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: cfg.Debounce,
		job:      job,
		logger:   log.OrNoop(logger),
	}, nil
}

// Runs returns how many times the job has been started.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runCount
}

// Run executes the job immediately, then watches until ctx is done.
// Job errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}

	w.logger.Info("watching for changes", log.String("path", w.path))
	w.runJob(ctx)

	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("change detected", log.String("op", event.Op.String()))
			w.schedule(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.runJob(ctx)
	})
}

// stop cancels a pending run and waits for one in progress.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.running.Wait()
}

func (w *Watcher) runJob(ctx context.Context) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.runCount++
	w.running.Add(1)
	w.mu.Unlock()
	defer w.running.Done()

	w.runMu.Lock()
	defer w.runMu.Unlock()

	if err := w.job(ctx); err != nil {
		w.logger.Error("job failed", log.String("path", w.path), log.Err(err))
	}
}
