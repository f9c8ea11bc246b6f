package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"response":"Bản tin ngắn."}`))
	}))
	defer server.Close()

	gen := NewOllama(server.URL+"/", "qwen3:4b", server.Client())
	text, err := gen.Generate(context.Background(), "Tóm tắt", Options{Temperature: 0.2, MaxTokens: 500})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Bản tin ngắn." {
		t.Errorf("text = %q", text)
	}
	if got.Model != "qwen3:4b" || got.Stream || got.Options.NumPredict != 500 || got.Options.Temperature != 0.2 {
		t.Errorf("unexpected request payload: %+v", got)
	}
}

func TestOllamaGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"response":`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(time.Second):
				}
			},
			timeout: 20 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			gen := NewOllama(server.URL, "m", server.Client())
			_, err := gen.Generate(context.Background(), "p", Options{Timeout: tt.timeout})
			if !errors.Is(err, errs.ErrBackendUnavailable) {
				t.Errorf("error = %v, want ErrBackendUnavailable", err)
			}
		})
	}
}

func TestResolveEndpoint(t *testing.T) {
	ctx := context.Background()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer up.Close()

	t.Run("first healthy candidate wins", func(t *testing.T) {
		url, ok := ResolveEndpoint(ctx, nil, []string{down.URL, up.URL + "/"}, time.Second, logger.Nop())
		if !ok || url != up.URL {
			t.Errorf("ResolveEndpoint() = %q, %v; want %q, true", url, ok, up.URL)
		}
	})

	t.Run("falls back to primary", func(t *testing.T) {
		url, ok := ResolveEndpoint(ctx, nil, []string{down.URL, "http://127.0.0.1:1"}, 200*time.Millisecond, logger.Nop())
		if ok || url != down.URL {
			t.Errorf("ResolveEndpoint() = %q, %v; want %q, false", url, ok, down.URL)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if url, ok := ResolveEndpoint(ctx, nil, nil, time.Second, logger.Nop()); ok || url != "" {
			t.Errorf("ResolveEndpoint() = %q, %v", url, ok)
		}
	})
}

func TestCall(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		gen    Generator
		wantOK bool
		want   string
	}{
		{
			name:   "ok trims text",
			gen:    GeneratorFunc(func(context.Context, string, Options) (string, error) { return "  xin chào \n", nil }),
			wantOK: true,
			want:   "xin chào",
		},
		{
			name: "blank completion is a failure",
			gen:  GeneratorFunc(func(context.Context, string, Options) (string, error) { return "   ", nil }),
			want: "fallback",
		},
		{
			name: "backend error",
			gen: GeneratorFunc(func(context.Context, string, Options) (string, error) {
				return "", errs.ErrBackendUnavailable
			}),
			want: "fallback",
		},
		{
			name: "nil generator",
			gen:  nil,
			want: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Call(ctx, tt.gen, "prompt", Options{})
			if out.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v (err=%v)", out.OK(), tt.wantOK, out.Err)
			}
			if got := out.Or("fallback"); got != tt.want {
				t.Errorf("Or() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	for _, msg := range []string{"Error 429", "quota exceeded", "RESOURCE_EXHAUSTED"} {
		if !isRateLimited(errors.New(msg)) {
			t.Errorf("isRateLimited(%q) = false", msg)
		}
	}
	if isRateLimited(errors.New("invalid argument")) {
		t.Error("isRateLimited(invalid argument) = true")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","created":0,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Đã sửa."}}]}`))
	}))
	defer server.Close()

	gen := NewOpenAI("test-key", server.URL, "m")
	text, err := gen.Generate(context.Background(), "Sửa", Options{Temperature: 0.2, MaxTokens: 100})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Đã sửa." {
		t.Errorf("text = %q", text)
	}
}
