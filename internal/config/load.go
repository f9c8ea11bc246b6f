package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envOllamaURL    = "NEWSCAST_OLLAMA_URL"
	envProvider     = "NEWSCAST_LLM_PROVIDER"
	envGeminiKeys   = "GEMINI_API_KEYS"
	envOpenAIKey    = "OPENAI_API_KEY"
	envTTSURL       = "NEWSCAST_TTS_URL"
	envCorrectorURL = "NEWSCAST_CORRECTOR_URL"
	envLogLevel     = "NEWSCAST_LOG_LEVEL"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultOutro     = "Theo dõi và follow kênh Tiktok của PSI để cập nhật thêm tin tức!"
)

// Default returns the built-in configuration. Load decodes YAML on top of it,
// so keys missing from the file keep these values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: ProviderOllama,
			URLs: []string{
				"http://172.18.96.1:11434",
				"http://localhost:11434",
				"http://127.0.0.1:11434",
			},
		},
		Summarizer: SummarizerConfig{Enabled: true},
		Refiner:    RefinerConfig{Enabled: true},
		Export:     ExportConfig{Docx: true, Text: true},
		Paths:      PathsConfig{Output: "output"},
	}
}

// Load reads the YAML file at path, applies environment overrides and validates the result.
// An empty path skips the file and uses defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(envProvider); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv(envOllamaURL); v != "" {
		// the override becomes the primary candidate; the rest stay as fallbacks
		urls := []string{v}
		for _, u := range c.LLM.URLs {
			if u != v {
				urls = append(urls, u)
			}
		}
		c.LLM.URLs = urls
	}
	if v := os.Getenv(envGeminiKeys); v != "" && strings.EqualFold(c.LLM.Provider, ProviderGemini) {
		c.LLM.APIKeys = splitList(v)
	}
	if v := os.Getenv(envOpenAIKey); v != "" && strings.EqualFold(c.LLM.Provider, ProviderOpenAI) {
		c.LLM.APIKeys = []string{v}
	}
	if v := os.Getenv(envTTSURL); v != "" {
		c.TTS.URL = v
	}
	if v := os.Getenv(envCorrectorURL); v != "" {
		c.Corrector.URL = v
		c.Corrector.Enabled = true
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Logging.Level = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
