package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/newscast/internal/logger"
)

// New creates a Watcher on jobsDir that runs at most maxConcurrent handlers at once
func New(jobsDir string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(jobsDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		jobsDir:       jobsDir,
		handler:       handler,
		logger:        log.With("watcher"),
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		limiter:       newLimiter(maxConcurrent),
		inFlight:      make(map[string]struct{}),
	}, nil
}
