package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

// Gemini generates text through the Gemini API, rotating through the supplied
// API keys when one is rate limited.
type Gemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

var _ Generator = (*Gemini)(nil)

// NewGemini creates a Gemini backend.
func NewGemini(apiKeys []string, model string, log logger.Logger) *Gemini {
	return &Gemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("%w: gemini: no api keys", errs.ErrBackendUnavailable)
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	var lastErr error
	for range len(g.apiKeys) {
		key, idx := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%w: gemini generate: %v", errs.ErrBackendUnavailable, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("%w: empty response from gemini", errs.ErrBackendUnavailable)
	}

	return "", fmt.Errorf("%w: all gemini api keys exhausted: %v", errs.ErrBackendUnavailable, lastErr)
}

func (g *Gemini) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *Gemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
