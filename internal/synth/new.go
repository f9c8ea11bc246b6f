package synth

import (
	"net/http"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

type implSynthesizer struct {
	baseURL     string
	temperature float64
	topK        int
	sampleRate  int
	httpClient  *http.Client
	logger      logger.Logger

	voicesOnce sync.Once
	available  []string
}

// New creates a Synthesizer for the TTS service at cfg.URL.
func New(cfg config.TTSConfig, client *http.Client, log logger.Logger) Synthesizer {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 24000
	}
	return &implSynthesizer{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		temperature: cfg.Temperature,
		topK:        cfg.TopK,
		sampleRate:  sampleRate,
		httpClient:  client,
		logger:      log.With("synth"),
	}
}
