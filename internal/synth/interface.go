package synth

import "context"

// Synthesizer turns narration text into mono 16-bit PCM samples.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]int16, error)
	SampleRate() int
}
