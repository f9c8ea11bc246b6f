package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/models"
)

// Run sequences crawl, summarize, correct, refine, normalize, assemble and
// synthesize. Text stages degrade to their input; only crawl and synthesis
// failures end the run.
func (p *implPipeline) Run(ctx context.Context, rawURL, outputName string) (models.Result, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	log := p.logger.With("run=" + runID[:8])
	if outputName == "" {
		outputName = DefaultOutputName(startTime)
	}

	result := models.Result{RunID: runID}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Generating audio for: %s", rawURL)
	log.Info(ctx, "========================================")

	// Step 1: Crawl article
	article, err := p.deps.Crawler.Crawl(ctx, rawURL)
	if err != nil {
		return result, fmt.Errorf("crawl article: %w", err)
	}
	if article.Title == "" && article.Body() == "" {
		return result, fmt.Errorf("crawl article: %w: no article text found at %s", errs.ErrUnsupportedSource, rawURL)
	}
	result.Article = article
	log.Info(ctx, "Title: %s", runewidth.Truncate(article.Title, 60, "..."))

	// Step 2: Summarize content (or use original)
	summary := p.summarize(ctx, log, article)
	result.Summary = summary
	log.Info(ctx, "Body (%s): %d words", summary.Provenance, len(strings.Fields(summary.Text)))

	// Step 3: Correct, refine and clean
	body := summary.Text
	if p.deps.Corrector != nil {
		body = keepNonEmpty(ctx, log, "correct", body, p.deps.Corrector.Correct(ctx, body))
	}
	if p.deps.Refiner != nil && p.cfg.Refiner.Enabled {
		body = keepNonEmpty(ctx, log, "refine", body, p.deps.Refiner.Refine(ctx, body))
	}
	body = keepNonEmpty(ctx, log, "normalize", body, p.deps.Normalizer.Normalize(body))
	log.Info(ctx, "Final body: %d words", len(strings.Fields(body)))

	// Step 4: Add intro and outro
	script := AssembleScript(p.cfg.Script, article.Title, body)
	result.Script = script
	log.Info(ctx, "Full script: %d words", script.WordCount())

	// Step 5: Synthesize or copy custom audio
	outputDir := p.cfg.Paths.Output
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return result, fmt.Errorf("create output dir: %w", err)
	}
	audioPath := filepath.Join(outputDir, outputName+".mp3")

	custom, err := p.produceAudio(ctx, log, script, audioPath)
	if err != nil {
		return result, err
	}
	result.AudioPath = audioPath
	result.CustomAudio = custom

	if d, err := p.deps.Encoder.Duration(ctx, audioPath); err != nil {
		log.Warn(ctx, "Failed to read audio duration: %v", err)
	} else {
		result.Duration = d
	}

	// Step 6: Export script documents
	p.export(ctx, log, &result, filepath.Join(outputDir, outputName))

	result.Elapsed = time.Since(startTime)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio generation complete!")
	log.Info(ctx, "Audio: %s", result.AudioPath)
	log.Info(ctx, "Duration: %.1fs", result.Duration.Seconds())
	log.Info(ctx, "Processing time: %s", result.Elapsed.Round(time.Millisecond))
	log.Info(ctx, "========================================")

	return result, nil
}

func (p *implPipeline) summarize(ctx context.Context, log logger.Logger, article models.Article) models.Summary {
	if !p.cfg.Summarizer.Enabled || p.deps.Summarizer == nil {
		text := article.Body()
		if text == "" {
			text = article.Title
		}
		log.Info(ctx, "Summarization disabled, using original text")
		return models.Summary{Text: text, Provenance: models.ProvenancePassThrough}
	}

	summary := p.deps.Summarizer.Summarize(ctx, article)
	if strings.TrimSpace(summary.Text) == "" {
		log.Warn(ctx, "Summarizer returned empty text, using original text")
		summary.Text = article.Body()
		summary.Provenance = models.ProvenancePassThrough
		if summary.Text == "" {
			summary.Text = article.Title
		}
	}
	return summary
}

// produceAudio reports whether a custom audio file was used.
func (p *implPipeline) produceAudio(ctx context.Context, log logger.Logger, script models.Script, audioPath string) (bool, error) {
	if custom := p.opts.CustomAudio; custom != "" {
		if _, err := os.Stat(custom); err == nil {
			if err := copyFile(custom, audioPath); err != nil {
				return false, fmt.Errorf("copy custom audio: %w", err)
			}
			log.Info(ctx, "Using custom audio: %s", custom)
			return true, nil
		}
		log.Warn(ctx, "Custom audio file not found: %s, synthesizing instead", custom)
	}

	if p.deps.Synthesizer == nil {
		return false, fmt.Errorf("%w: no synthesizer configured", errs.ErrSynthesis)
	}

	samples, err := p.deps.Synthesizer.Synthesize(ctx, script.Text, p.cfg.TTS.Voice)
	if err != nil {
		return false, fmt.Errorf("synthesize: %w", err)
	}
	if err := p.deps.Encoder.Write(ctx, samples, p.deps.Synthesizer.SampleRate(), audioPath); err != nil {
		return false, fmt.Errorf("%w: write audio: %v", errs.ErrSynthesis, err)
	}
	log.Info(ctx, "Generated TTS audio")
	return false, nil
}

// keepNonEmpty returns next unless a stage produced nothing usable.
func keepNonEmpty(ctx context.Context, log logger.Logger, stage, prev, next string) string {
	if strings.TrimSpace(next) == "" {
		log.Warn(ctx, "Stage %s returned empty text, keeping previous", stage)
		return prev
	}
	return next
}
