package pipeline

import (
	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/corrector"
	"github.com/nguyentantai21042004/newscast/internal/crawler"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/refiner"
	"github.com/nguyentantai21042004/newscast/internal/summarizer"
	"github.com/nguyentantai21042004/newscast/internal/synth"
	"github.com/nguyentantai21042004/newscast/internal/textnorm"
	"github.com/nguyentantai21042004/newscast/pkg/executor"
)

// Deps are the stage implementations. Summarizer, Corrector and Refiner may
// be nil to skip that stage.
type Deps struct {
	Crawler     crawler.Crawler
	Summarizer  summarizer.Summarizer
	Corrector   corrector.Corrector
	Refiner     refiner.Refiner
	Synthesizer synth.Synthesizer
	Encoder     *synth.Encoder
	Normalizer  *textnorm.Normalizer
}

// Options are per-invocation settings not covered by the config file.
type Options struct {
	// CustomAudio is a pre-recorded file used instead of synthesis when it exists.
	CustomAudio string
}

type implPipeline struct {
	cfg    *config.Config
	deps   Deps
	opts   Options
	logger logger.Logger
}

// New creates a Pipeline
func New(cfg *config.Config, deps Deps, opts Options, log logger.Logger) Pipeline {
	if deps.Normalizer == nil {
		deps.Normalizer = textnorm.Default()
	}
	if deps.Encoder == nil {
		deps.Encoder = synth.NewEncoder(executor.New(), cfg.FFmpeg, log)
	}
	return &implPipeline{
		cfg:    cfg,
		deps:   deps,
		opts:   opts,
		logger: log,
	}
}
