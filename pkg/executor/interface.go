package executor

import "context"

// Executor runs external tools such as ffmpeg and ffprobe.
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports where name resolves on PATH.
	LookPath(name string) (string, error)
}
