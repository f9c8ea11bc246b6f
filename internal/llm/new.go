package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

// New builds the Generator selected by cfg.Provider. For ollama the endpoint
// is resolved once here, by probing cfg.URLs in order.
func New(ctx context.Context, cfg config.LLMConfig, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderOllama, "":
		client := &http.Client{}
		url, _ := ResolveEndpoint(ctx, client, cfg.URLs, cfg.ProbeTimeout, log)
		if url == "" {
			return nil, fmt.Errorf("llm: no ollama url configured")
		}
		return NewOllama(url, cfg.Model, client), nil
	case config.ProviderGemini:
		return NewGemini(cfg.APIKeys, cfg.Model, log), nil
	case config.ProviderOpenAI:
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("llm: openai api key missing")
		}
		return NewOpenAI(cfg.APIKeys[0], cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
