package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/newscast/internal/chunker"
	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/llm"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/textnorm"
)

const (
	defaultTargetWords       = 350
	defaultFallbackSentences = 12
)

// Timeouts bound the two kinds of generation call.
type Timeouts struct {
	Chunk time.Duration
	Long  time.Duration
}

type implSummarizer struct {
	gen      llm.Generator
	cfg      config.SummarizerConfig
	timeouts Timeouts
	norm     *textnorm.Normalizer
	logger   logger.Logger
}

// New creates a Summarizer backed by gen. Output is cleaned with norm, or the
// default rule set when norm is nil.
func New(gen llm.Generator, cfg config.SummarizerConfig, timeouts Timeouts, norm *textnorm.Normalizer, log logger.Logger) Summarizer {
	if norm == nil {
		norm = textnorm.Default()
	}
	if cfg.TargetWords <= 0 {
		cfg.TargetWords = defaultTargetWords
	}
	if cfg.DirectThreshold <= 0 {
		cfg.DirectThreshold = chunker.DefaultMaxLen
	}
	if cfg.FallbackSentences <= 0 {
		cfg.FallbackSentences = defaultFallbackSentences
	}
	return &implSummarizer{
		gen:      gen,
		cfg:      cfg,
		timeouts: timeouts,
		norm:     norm,
		logger:   log.With("summarizer"),
	}
}
