package refiner

import (
	"time"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/llm"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/textnorm"
)

type implRefiner struct {
	gen      llm.Generator
	minRatio float64
	maxRatio float64
	timeout  time.Duration
	norm     *textnorm.Normalizer
	logger   logger.Logger
}

// New creates a Refiner. Ratios left at zero default to 0.5 and 1.5.
func New(gen llm.Generator, cfg config.RefinerConfig, timeout time.Duration, norm *textnorm.Normalizer, log logger.Logger) Refiner {
	if norm == nil {
		norm = textnorm.Default()
	}
	r := &implRefiner{
		gen:      gen,
		minRatio: cfg.MinRatio,
		maxRatio: cfg.MaxRatio,
		timeout:  timeout,
		norm:     norm,
		logger:   log.With("refiner"),
	}
	if r.minRatio <= 0 {
		r.minRatio = 0.5
	}
	if r.maxRatio <= r.minRatio {
		r.maxRatio = 1.5
	}
	return r
}
