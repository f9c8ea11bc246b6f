package watcher

import "context"

// Watcher monitors the job directory for new job files
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles one job file
type EventHandler func(ctx context.Context, filePath string) error

// RunFunc processes one article URL, writing results under outputName.
type RunFunc func(ctx context.Context, rawURL, outputName string) error
