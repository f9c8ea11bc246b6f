// Package llm talks to the text-generation backends used for summarizing
// and refining article text.
package llm

import (
	"context"
	"time"
)

// Options are the decoding settings sent with a single prompt.
type Options struct {
	Temperature float64
	MaxTokens   int
	// Timeout bounds the whole request; zero leaves the caller's context as is.
	Timeout time.Duration
}

// Generator turns one prompt into one completion. Implementations wrap every
// transport or status failure with errs.ErrBackendUnavailable.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}
