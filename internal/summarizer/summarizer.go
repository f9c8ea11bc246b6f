package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/newscast/internal/chunker"
	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/llm"
	"github.com/nguyentantai21042004/newscast/internal/models"
	"github.com/nguyentantai21042004/newscast/internal/textnorm"
)

var (
	chunkOptions   = llm.Options{Temperature: 0.2, MaxTokens: 500}
	combineOptions = llm.Options{Temperature: 0.3, MaxTokens: 2000}
	directOptions  = llm.Options{Temperature: 0.2, MaxTokens: 2000}
)

// Summarize uses a single prompt for short articles. Longer ones are split
// into chunks, each chunk is summarized on its own and the partial summaries
// are merged by a final combine prompt.
func (s *implSummarizer) Summarize(ctx context.Context, article models.Article) models.Summary {
	body := article.Body()
	if utf8.RuneCountInString(body) < s.cfg.DirectThreshold {
		return s.summarizeDirect(ctx, article, body)
	}

	chunks := chunker.Split(body, s.cfg.ChunkSize)
	s.logger.Info(ctx, "Splitting into %d chunks", len(chunks))

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		text, err := s.summarizeChunk(ctx, chunk, i+1, len(chunks))
		if err != nil {
			s.logger.Warn(ctx, "Chunk %d/%d dropped: %v", i+1, len(chunks), err)
			continue
		}
		partials = append(partials, text)
	}

	if len(partials) == 0 {
		s.logger.Warn(ctx, "All %d chunks failed, using extractive fallback", len(chunks))
		summary := s.fallback(article)
		summary.Chunks = len(chunks)
		return summary
	}

	return models.Summary{
		Text:             s.combine(ctx, article.Title, partials),
		Provenance:       models.ProvenanceChunked,
		Chunks:           len(chunks),
		ChunksSummarized: len(partials),
	}
}

func (s *implSummarizer) summarizeDirect(ctx context.Context, article models.Article, body string) models.Summary {
	out := llm.Call(ctx, s.gen, buildDirectPrompt(article.Title, body, s.cfg.TargetWords), withTimeout(directOptions, s.timeouts.Long))
	if out.OK() {
		if text := s.norm.Normalize(out.Text); text != "" {
			return models.Summary{Text: text, Provenance: models.ProvenanceDirect}
		}
		out.Err = fmt.Errorf("%w: completion is empty after cleanup", errs.ErrValidationRejected)
	}

	s.logger.Warn(ctx, "Direct summarization failed, using extractive fallback: %v", out.Err)
	return s.fallback(article)
}

func (s *implSummarizer) summarizeChunk(ctx context.Context, chunk string, index, total int) (string, error) {
	out := llm.Call(ctx, s.gen, buildChunkPrompt(chunk, index, total), withTimeout(chunkOptions, s.timeouts.Chunk))
	if !out.OK() {
		return "", out.Err
	}
	text := strings.TrimSpace(textnorm.StripThinking(out.Text))
	if text == "" {
		return "", fmt.Errorf("%w: completion held only a reasoning block", errs.ErrValidationRejected)
	}
	return text, nil
}

// combine merges partial summaries. A failed or implausibly short rewrite
// falls back to the partial summaries joined together.
func (s *implSummarizer) combine(ctx context.Context, title string, partials []string) string {
	combined := strings.Join(partials, " ")
	out := llm.Call(ctx, s.gen, buildCombinePrompt(title, combined, s.cfg.TargetWords), withTimeout(combineOptions, s.timeouts.Long))

	if err := s.checkCombined(out); err != nil {
		s.logger.Warn(ctx, "Combine step rejected, keeping chunk summaries: %v", err)
		return s.clean(combined, combined)
	}
	return s.clean(out.Text, s.clean(combined, combined))
}

func (s *implSummarizer) checkCombined(out llm.Outcome) error {
	if !out.OK() {
		return out.Err
	}
	if n := len(strings.Fields(out.Text)); n < s.cfg.MinCombinedWords {
		return fmt.Errorf("%w: combined summary has %d words, want at least %d", errs.ErrValidationRejected, n, s.cfg.MinCombinedWords)
	}
	return nil
}

// fallback builds an extractive summary from the leading sentences of the
// content, then the description, then the title.
func (s *implSummarizer) fallback(article models.Article) models.Summary {
	source := strings.TrimSpace(article.Content)
	if source == "" {
		source = strings.TrimSpace(article.Description)
	}

	text := article.Title
	if source != "" {
		sentences := chunker.Sentences(source)
		if len(sentences) > s.cfg.FallbackSentences {
			sentences = sentences[:s.cfg.FallbackSentences]
		}
		text = strings.Join(sentences, " ")
	}

	return models.Summary{Text: s.clean(text, text), Provenance: models.ProvenanceFallback}
}

// clean normalizes text, returning fallback if nothing survives.
func (s *implSummarizer) clean(text, fallback string) string {
	if cleaned := s.norm.Normalize(text); cleaned != "" {
		return cleaned
	}
	return fallback
}

func withTimeout(opts llm.Options, d time.Duration) llm.Options {
	opts.Timeout = d
	return opts
}
