package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/corrector"
	"github.com/nguyentantai21042004/newscast/internal/crawler"
	"github.com/nguyentantai21042004/newscast/internal/llm"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/pipeline"
	"github.com/nguyentantai21042004/newscast/internal/refiner"
	"github.com/nguyentantai21042004/newscast/internal/summarizer"
	"github.com/nguyentantai21042004/newscast/internal/synth"
	"github.com/nguyentantai21042004/newscast/internal/textnorm"
	"github.com/nguyentantai21042004/newscast/pkg/executor"
)

// defaultConfigPath is read when --config is not given and the file exists.
const defaultConfigPath = "config.yaml"

type commandContext struct {
	configFlag *string
	levelFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, levelFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		levelFlag:  levelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.levelFlag != nil && strings.TrimSpace(*c.levelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.levelFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path
		}
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

func (c *commandContext) logger() logger.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logger.New("info")
	}
	return logger.New(cfg.Logging.Level)
}

// buildPipeline wires every stage from cfg. The LLM backend is only resolved
// when summarization or refinement needs it.
func buildPipeline(ctx context.Context, cfg *config.Config, opts pipeline.Options, log logger.Logger) (pipeline.Pipeline, error) {
	norm := textnorm.Default()

	deps := pipeline.Deps{
		Crawler:     crawler.New(cfg.Crawler, nil, log),
		Synthesizer: synth.New(cfg.TTS, nil, log),
		Normalizer:  norm,
	}

	exec := executor.New()
	if _, err := exec.LookPath(cfg.FFmpeg.Binary); err != nil {
		log.Warn(ctx, "%s not found, audio will be written as WAV: %v", cfg.FFmpeg.Binary, err)
	}
	deps.Encoder = synth.NewEncoder(exec, cfg.FFmpeg, log)

	if cfg.Summarizer.Enabled || cfg.Refiner.Enabled {
		gen, err := llm.New(ctx, cfg.LLM, log)
		if err != nil {
			if cfg.Summarizer.Enabled {
				return nil, fmt.Errorf("init llm backend: %w", err)
			}
			log.Warn(ctx, "LLM backend unavailable, refinement disabled: %v", err)
		}
		if gen != nil {
			if cfg.Summarizer.Enabled {
				deps.Summarizer = summarizer.New(gen, cfg.Summarizer, summarizer.Timeouts{
					Chunk: cfg.LLM.ChunkTimeout,
					Long:  cfg.LLM.LongTimeout,
				}, norm, log)
			}
			if cfg.Refiner.Enabled {
				deps.Refiner = refiner.New(gen, cfg.Refiner, cfg.LLM.LongTimeout, norm, log)
			}
		}
	}

	if cfg.Corrector.Enabled {
		deps.Corrector = corrector.New(cfg.Corrector, nil, log)
	}

	return pipeline.New(cfg, deps, opts, log), nil
}

// ensureDirectories creates the directories watch mode reads from and writes to.
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Jobs,
		cfg.Paths.Archived,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
