package llm

import (
	"context"
	"strings"
)

// Outcome is the result of one generation call: Ok(Text) when Err is nil and
// Text is not blank, Err(reason) otherwise.
type Outcome struct {
	Text string
	Err  error
}

// Call runs one generation and captures the result as an Outcome.
func Call(ctx context.Context, gen Generator, prompt string, opts Options) Outcome {
	if gen == nil {
		return Outcome{Err: errNoGenerator}
	}
	text, err := gen.Generate(ctx, prompt, opts)
	if err != nil {
		return Outcome{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{Err: errEmptyCompletion}
	}
	return Outcome{Text: text}
}

// OK reports whether the call produced usable text.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Text != ""
}

// Or returns the completion, or fallback when the call failed.
func (o Outcome) Or(fallback string) string {
	if o.OK() {
		return o.Text
	}
	return fallback
}
