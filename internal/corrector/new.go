package corrector

import (
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

type implCorrector struct {
	url        string
	maxTokens  int
	maxWords   int
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Corrector posting to cfg.URL. Each request carries at most
// three quarters of cfg.MaxTokens words, leaving room for subword tokens.
func New(cfg config.CorrectorConfig, client *http.Client, log logger.Logger) Corrector {
	if client == nil {
		client = &http.Client{}
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 160
	}
	maxWords := maxTokens * 3 / 4
	if maxWords == 0 {
		maxWords = 1
	}
	return &implCorrector{
		url:        strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		maxTokens:  maxTokens,
		maxWords:   maxWords,
		timeout:    cfg.Timeout,
		httpClient: client,
		logger:     log.With("corrector"),
	}
}
