package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/models"
	"github.com/nguyentantai21042004/newscast/internal/synth"
)

type crawlerFunc func(ctx context.Context, rawURL string) (models.Article, error)

func (f crawlerFunc) Crawl(ctx context.Context, rawURL string) (models.Article, error) {
	return f(ctx, rawURL)
}

type summarizerFunc func(ctx context.Context, a models.Article) models.Summary

func (f summarizerFunc) Summarize(ctx context.Context, a models.Article) models.Summary {
	return f(ctx, a)
}

type textFunc func(ctx context.Context, text string) string

func (f textFunc) Correct(ctx context.Context, text string) string { return f(ctx, text) }
func (f textFunc) Refine(ctx context.Context, text string) string  { return f(ctx, text) }

type fakeSynth struct {
	calls int
	text  string
	voice string
	err   error
}

func (s *fakeSynth) Synthesize(_ context.Context, text, voice string) ([]int16, error) {
	s.calls++
	s.text, s.voice = text, voice
	if s.err != nil {
		return nil, s.err
	}
	return make([]int16, 24000), nil
}

func (s *fakeSynth) SampleRate() int { return 24000 }

// noFFmpeg fails every command, so mp3 targets keep WAV data.
type noFFmpeg struct{}

func (noFFmpeg) Execute(context.Context, string, ...string) (string, error) {
	return "", errors.New("ffmpeg not installed")
}

func (noFFmpeg) LookPath(name string) (string, error) {
	return "", fmt.Errorf("find %s: not installed", name)
}

var testArticle = models.Article{
	Title:       "Giá vàng hôm nay tăng mạnh lên mức cao nhất trong lịch sử thị trường",
	Description: "Giá vàng tăng.",
	Content:     "Sáng 15/3/2024 giá vàng tăng 1.200.000 đồng.",
	Source:      models.SourceVnExpress,
	URL:         "https://vnexpress.net/gia-vang.html",
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.Output = filepath.Join(t.TempDir(), "output")
	cfg.Export.Docx = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return cfg
}

func testDeps(cfg *config.Config, s *fakeSynth) Deps {
	return Deps{
		Crawler: crawlerFunc(func(context.Context, string) (models.Article, error) {
			return testArticle, nil
		}),
		Summarizer: summarizerFunc(func(_ context.Context, a models.Article) models.Summary {
			return models.Summary{Text: "Giá vàng tăng 1.200.000 đồng,kỷ lục mới", Provenance: models.ProvenanceDirect}
		}),
		Corrector:   textFunc(func(_ context.Context, text string) string { return text }),
		Refiner:     textFunc(func(_ context.Context, text string) string { return text }),
		Synthesizer: s,
		Encoder:     synth.NewEncoder(noFFmpeg{}, cfg.FFmpeg, logger.Nop()),
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Docx = true
	s := &fakeSynth{}
	p := New(cfg, testDeps(cfg, s), Options{}, logger.Nop())

	result, err := p.Run(context.Background(), testArticle.URL, "gia-vang")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantBody := "Giá vàng tăng 1200000 đồng, kỷ lục mới."
	if result.Script.Body != wantBody {
		t.Errorf("Body = %q, want %q", result.Script.Body, wantBody)
	}
	if !strings.HasPrefix(result.Script.Text, "Tin nóng: Giá vàng hôm nay") || !strings.HasSuffix(result.Script.Text, " ... "+cfg.Script.Outro) {
		t.Errorf("Script = %q", result.Script.Text)
	}
	if s.calls != 1 || s.text != result.Script.Text || s.voice != "binh" {
		t.Errorf("synthesizer called %d times with %q/%q", s.calls, s.voice, s.text)
	}

	if result.AudioPath != filepath.Join(cfg.Paths.Output, "gia-vang.mp3") {
		t.Errorf("AudioPath = %s", result.AudioPath)
	}
	for _, path := range []string{result.AudioPath, result.ScriptPath, result.DocxPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %q to exist: %v", path, err)
		}
	}
	if d := result.Duration; d < time.Second-time.Millisecond || d > time.Second+time.Millisecond {
		t.Errorf("Duration = %s, want 1s", d)
	}
	if result.RunID == "" || result.CustomAudio || result.Summary.Provenance != models.ProvenanceDirect {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRunUnsupportedSource(t *testing.T) {
	cfg := testConfig(t)
	s := &fakeSynth{}
	deps := testDeps(cfg, s)
	deps.Crawler = crawlerFunc(func(_ context.Context, rawURL string) (models.Article, error) {
		return models.Article{}, fmt.Errorf("%w: example.com", errs.ErrUnsupportedSource)
	})

	_, err := New(cfg, deps, Options{}, logger.Nop()).Run(context.Background(), "https://example.com/a", "x")
	if !errors.Is(err, errs.ErrUnsupportedSource) {
		t.Fatalf("Run() error = %v, want ErrUnsupportedSource", err)
	}
	if s.calls != 0 {
		t.Error("synthesis must not run after a crawl failure")
	}
	if _, err := os.Stat(cfg.Paths.Output); !os.IsNotExist(err) {
		t.Errorf("no output should be created, stat err = %v", err)
	}
}

func TestRunEmptyArticle(t *testing.T) {
	cfg := testConfig(t)
	deps := testDeps(cfg, &fakeSynth{})
	deps.Crawler = crawlerFunc(func(context.Context, string) (models.Article, error) {
		return models.Article{Source: models.SourceTienPhong}, nil
	})

	_, err := New(cfg, deps, Options{}, logger.Nop()).Run(context.Background(), "https://tienphong.vn/x", "x")
	if !errors.Is(err, errs.ErrUnsupportedSource) {
		t.Errorf("Run() error = %v, want ErrUnsupportedSource", err)
	}
}

func TestRunKeepsTextWhenStagesReturnEmpty(t *testing.T) {
	cfg := testConfig(t)
	deps := testDeps(cfg, &fakeSynth{})
	deps.Corrector = textFunc(func(context.Context, string) string { return "" })
	deps.Refiner = textFunc(func(context.Context, string) string { return "   " })

	result, err := New(cfg, deps, Options{}, logger.Nop()).Run(context.Background(), testArticle.URL, "x")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Script.Body != "Giá vàng tăng 1200000 đồng, kỷ lục mới." {
		t.Errorf("Body = %q", result.Script.Body)
	}
}

func TestRunStageOrder(t *testing.T) {
	cfg := testConfig(t)
	var order []string
	deps := testDeps(cfg, &fakeSynth{})
	deps.Corrector = textFunc(func(_ context.Context, text string) string {
		order = append(order, "correct")
		return text + " đã sửa"
	})
	deps.Refiner = textFunc(func(_ context.Context, text string) string {
		order = append(order, "refine")
		if !strings.HasSuffix(text, " đã sửa") {
			t.Errorf("refine should see corrected text, got %q", text)
		}
		return text
	})

	if _, err := New(cfg, deps, Options{}, logger.Nop()).Run(context.Background(), testArticle.URL, "x"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Join(order, ",") != "correct,refine" {
		t.Errorf("stage order = %v", order)
	}
}

func TestRunSummarizationDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Summarizer.Enabled = false
	deps := testDeps(cfg, &fakeSynth{})
	deps.Summarizer = summarizerFunc(func(context.Context, models.Article) models.Summary {
		t.Error("summarizer must not run when disabled")
		return models.Summary{}
	})

	result, err := New(cfg, deps, Options{}, logger.Nop()).Run(context.Background(), testArticle.URL, "x")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Summary.Provenance != models.ProvenancePassThrough {
		t.Errorf("Provenance = %s", result.Summary.Provenance)
	}
	if want := "Giá vàng tăng. Sáng ngày 15 tháng 3 năm 2024 giá vàng tăng 1200000 đồng."; result.Script.Body != want {
		t.Errorf("Body = %q, want %q", result.Script.Body, want)
	}
}

func TestRunCustomAudio(t *testing.T) {
	cfg := testConfig(t)
	custom := filepath.Join(t.TempDir(), "voice.mp3")
	if err := os.WriteFile(custom, []byte("recorded"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("existing file replaces synthesis", func(t *testing.T) {
		s := &fakeSynth{}
		result, err := New(cfg, testDeps(cfg, s), Options{CustomAudio: custom}, logger.Nop()).Run(context.Background(), testArticle.URL, "custom")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if s.calls != 0 || !result.CustomAudio {
			t.Errorf("synth calls = %d, CustomAudio = %v", s.calls, result.CustomAudio)
		}
		data, err := os.ReadFile(result.AudioPath)
		if err != nil || string(data) != "recorded" {
			t.Errorf("custom audio not copied: %q, %v", data, err)
		}
	})

	t.Run("missing file falls back to synthesis", func(t *testing.T) {
		s := &fakeSynth{}
		result, err := New(cfg, testDeps(cfg, s), Options{CustomAudio: custom + ".missing"}, logger.Nop()).Run(context.Background(), testArticle.URL, "synth")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if s.calls != 1 || result.CustomAudio {
			t.Errorf("synth calls = %d, CustomAudio = %v", s.calls, result.CustomAudio)
		}
	})
}

func TestRunSynthesisFailure(t *testing.T) {
	cfg := testConfig(t)
	s := &fakeSynth{err: fmt.Errorf("%w: tts returned 500", errs.ErrSynthesis)}

	_, err := New(cfg, testDeps(cfg, s), Options{}, logger.Nop()).Run(context.Background(), testArticle.URL, "fail")
	if !errors.Is(err, errs.ErrSynthesis) {
		t.Fatalf("Run() error = %v, want ErrSynthesis", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "fail.txt")); !os.IsNotExist(err) {
		t.Errorf("no script should be exported after a synthesis failure")
	}

	deps := testDeps(cfg, nil)
	deps.Synthesizer = nil
	if _, err := New(cfg, deps, Options{}, logger.Nop()).Run(context.Background(), testArticle.URL, "none"); !errors.Is(err, errs.ErrSynthesis) {
		t.Errorf("Run() without synthesizer error = %v, want ErrSynthesis", err)
	}
}

func TestRunDefaultOutputName(t *testing.T) {
	cfg := testConfig(t)
	result, err := New(cfg, testDeps(cfg, &fakeSynth{}), Options{}, logger.Nop()).Run(context.Background(), testArticle.URL, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !regexp.MustCompile(`tiktok_news_\d{8}_\d{6}\.mp3$`).MatchString(result.AudioPath) {
		t.Errorf("AudioPath = %s", result.AudioPath)
	}
}

func TestAssembleScript(t *testing.T) {
	cfg := config.ScriptConfig{IntroPrefix: "Tin nóng: ", TitleWidth: 50, Outro: "Theo dõi kênh!"}

	tests := []struct {
		name      string
		title     string
		wantIntro string
	}{
		{"short title", "Hà Nội mưa lớn", "Tin nóng: Hà Nội mưa lớn"},
		{"long title cut at 50 characters", strings.Repeat("ệ", 60), "Tin nóng: " + strings.Repeat("ệ", 50)},
		{"cut leaves no trailing space", strings.Repeat("a", 49) + " bcd", "Tin nóng: " + strings.Repeat("a", 49)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssembleScript(cfg, tt.title, " Nội dung. ")
			if got.Intro != tt.wantIntro {
				t.Errorf("Intro = %q, want %q", got.Intro, tt.wantIntro)
			}
			if want := tt.wantIntro + "... Nội dung. ... Theo dõi kênh!"; got.Text != want {
				t.Errorf("Text = %q, want %q", got.Text, want)
			}
		})
	}
}

func TestDefaultOutputName(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 7, 0, time.UTC)
	if got := DefaultOutputName(now); got != "tiktok_news_20240315_090507" {
		t.Errorf("DefaultOutputName() = %q", got)
	}
}
