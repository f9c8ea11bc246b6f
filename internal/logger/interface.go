package logger

import "context"

// Logger is the leveled, printf-style logger shared by every pipeline stage.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// With returns a logger that tags every message with the given component name.
	With(tag string) Logger
}
