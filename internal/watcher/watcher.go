package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/newscast/internal/logger"
)

// settleDelay gives writers time to finish a job file before it is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	jobsDir       string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	limiter       *limiter

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start handles job files already in the directory, then every job file
// created or moved in, until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Job watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.jobsDir)
	w.logger.Info(ctx, "Job files: %s, one URL per line", strings.Join(jobExtensions, ", "))

	if err := w.dispatchExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for running jobs to complete...")
			w.limiter.wait()
			w.logger.Info(ctx, "Job watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			// files moved in arrive as Create; Rename is the old name leaving
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsJobFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-job file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New job detected: %s", event.Name)
			time.Sleep(settleDelay)
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) dispatchExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.jobsDir)
	if err != nil {
		return fmt.Errorf("read jobs dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && IsJobFile(e.Name()) {
			files = append(files, filepath.Join(w.jobsDir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, f := range files {
		w.logger.Info(ctx, "Pending job found: %s", f)
		if err := w.dispatch(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler for path unless a run for it is still active.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	w.mu.Lock()
	if _, busy := w.inFlight[path]; busy {
		w.mu.Unlock()
		return nil
	}
	w.inFlight[path] = struct{}{}
	w.mu.Unlock()

	err := w.limiter.goLimited(ctx, func() {
		defer w.done(path)
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	})
	if err != nil {
		w.done(path)
	}
	return err
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}
