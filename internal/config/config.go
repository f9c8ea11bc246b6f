package config

import (
	"fmt"
	"strings"
	"time"
)

// Backend providers accepted in llm.provider.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Refiner     RefinerConfig     `yaml:"refiner"`
	Corrector   CorrectorConfig   `yaml:"corrector"`
	TTS         TTSConfig         `yaml:"tts"`
	Script      ScriptConfig      `yaml:"script"`
	Crawler     CrawlerConfig     `yaml:"crawler"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Export      ExportConfig      `yaml:"export"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

// LLMConfig selects the text-generation backend. URLs are probed in order
// for the ollama provider; BaseURL is only used by the openai provider.
type LLMConfig struct {
	Provider     string        `yaml:"provider"`
	Model        string        `yaml:"model"`
	URLs         []string      `yaml:"urls"`
	APIKeys      []string      `yaml:"api_keys"`
	BaseURL      string        `yaml:"base_url"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	ChunkTimeout time.Duration `yaml:"chunk_timeout"`
	LongTimeout  time.Duration `yaml:"long_timeout"`
}

type SummarizerConfig struct {
	Enabled           bool `yaml:"enabled"`
	TargetWords       int  `yaml:"target_words"`
	ChunkSize         int  `yaml:"chunk_size"`
	DirectThreshold   int  `yaml:"direct_threshold"`
	MinCombinedWords  int  `yaml:"min_combined_words"`
	FallbackSentences int  `yaml:"fallback_sentences"`
}

type RefinerConfig struct {
	Enabled  bool    `yaml:"enabled"`
	MinRatio float64 `yaml:"min_ratio"`
	MaxRatio float64 `yaml:"max_ratio"`
}

type CorrectorConfig struct {
	Enabled   bool          `yaml:"enabled"`
	URL       string        `yaml:"url"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

type TTSConfig struct {
	URL         string        `yaml:"url"`
	Voice       string        `yaml:"voice"`
	Temperature float64       `yaml:"temperature"`
	TopK        int           `yaml:"top_k"`
	SampleRate  int           `yaml:"sample_rate"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ScriptConfig struct {
	IntroPrefix string `yaml:"intro_prefix"`
	TitleWidth  int    `yaml:"title_width"`
	Outro       string `yaml:"outro"`
}

type CrawlerConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type FFmpegConfig struct {
	Binary      string `yaml:"binary"`
	ProbeBinary string `yaml:"probe_binary"`
	Quality     int    `yaml:"quality"`
}

type PathsConfig struct {
	Output   string `yaml:"output"`
	Jobs     string `yaml:"jobs"`
	Archived string `yaml:"archived"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
	Text bool `yaml:"text"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Validate rejects unusable settings and fills zero values with defaults.
func (c *Config) Validate() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOllama
	}

	switch c.LLM.Provider {
	case ProviderOllama:
		if len(c.LLM.URLs) == 0 {
			return fmt.Errorf("llm.urls is required for provider %s", c.LLM.Provider)
		}
		if c.LLM.Model == "" {
			c.LLM.Model = "qwen3-vl:4b"
		}
	case ProviderGemini:
		if len(c.LLM.APIKeys) == 0 {
			return fmt.Errorf("llm.api_keys is required for provider %s", c.LLM.Provider)
		}
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-2.5-flash"
		}
	case ProviderOpenAI:
		if len(c.LLM.APIKeys) == 0 {
			return fmt.Errorf("llm.api_keys is required for provider %s", c.LLM.Provider)
		}
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-4o-mini"
		}
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}

	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Refiner.MinRatio < 0 || (c.Refiner.MaxRatio > 0 && c.Refiner.MaxRatio <= c.Refiner.MinRatio) {
		return fmt.Errorf("refiner ratios must satisfy 0 <= min_ratio < max_ratio")
	}
	if c.Corrector.Enabled && c.Corrector.URL == "" {
		return fmt.Errorf("corrector.url is required when the corrector is enabled")
	}

	if c.LLM.ProbeTimeout == 0 {
		c.LLM.ProbeTimeout = 2 * time.Second
	}
	if c.LLM.ChunkTimeout == 0 {
		c.LLM.ChunkTimeout = 60 * time.Second
	}
	if c.LLM.LongTimeout == 0 {
		c.LLM.LongTimeout = 120 * time.Second
	}
	if c.Summarizer.TargetWords == 0 {
		c.Summarizer.TargetWords = 350
	}
	if c.Summarizer.ChunkSize == 0 {
		c.Summarizer.ChunkSize = 1500
	}
	if c.Summarizer.DirectThreshold == 0 {
		c.Summarizer.DirectThreshold = 1500
	}
	if c.Summarizer.MinCombinedWords == 0 {
		c.Summarizer.MinCombinedWords = 80
	}
	if c.Summarizer.FallbackSentences == 0 {
		c.Summarizer.FallbackSentences = 12
	}
	if c.Refiner.MinRatio == 0 {
		c.Refiner.MinRatio = 0.5
	}
	if c.Refiner.MaxRatio == 0 {
		c.Refiner.MaxRatio = 1.5
	}
	if c.Corrector.MaxTokens == 0 {
		c.Corrector.MaxTokens = 160
	}
	if c.Corrector.Timeout == 0 {
		c.Corrector.Timeout = 30 * time.Second
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "binh"
	}
	if c.TTS.Temperature == 0 {
		c.TTS.Temperature = 0.8
	}
	if c.TTS.TopK == 0 {
		c.TTS.TopK = 50
	}
	if c.TTS.SampleRate == 0 {
		c.TTS.SampleRate = 24000
	}
	if c.TTS.Timeout == 0 {
		c.TTS.Timeout = 10 * time.Minute
	}
	if c.Script.IntroPrefix == "" {
		c.Script.IntroPrefix = "Tin nóng: "
	}
	if c.Script.TitleWidth == 0 {
		c.Script.TitleWidth = 50
	}
	if c.Script.Outro == "" {
		c.Script.Outro = defaultOutro
	}
	if c.Crawler.UserAgent == "" {
		c.Crawler.UserAgent = defaultUserAgent
	}
	if c.Crawler.Timeout == 0 {
		c.Crawler.Timeout = 10 * time.Second
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.Quality == 0 {
		c.FFmpeg.Quality = 2
	}
	if c.Paths.Jobs == "" {
		c.Paths.Jobs = "data/jobs"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}
