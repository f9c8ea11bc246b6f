package corrector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

func words(n int, w string) string {
	return strings.TrimSpace(strings.Repeat(w+" ", n))
}

func TestCorrectSplitsIntoPieces(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []correctRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req correctRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(correctResponse{Text: strings.ReplaceAll(req.Text, "tieng", "tiếng")})
	}))
	defer server.Close()

	c := New(config.CorrectorConfig{URL: server.URL, MaxTokens: 160, Timeout: time.Second}, server.Client(), logger.Nop())
	got := c.Correct(context.Background(), words(250, "tieng"))

	if len(requests) != 3 {
		t.Fatalf("expected 3 requests for 250 words, got %d", len(requests))
	}
	for i, want := range []int{120, 120, 10} {
		if n := len(strings.Fields(requests[i].Text)); n != want {
			t.Errorf("piece %d has %d words, want %d", i, n, want)
		}
		if requests[i].MaxTokens != 160 {
			t.Errorf("piece %d max tokens = %d", i, requests[i].MaxTokens)
		}
	}
	if got != words(250, "tiếng") {
		t.Errorf("Correct() did not rejoin corrected pieces")
	}
}

func TestCorrectKeepsFailedPieces(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req correctRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		calls++
		switch calls {
		case 1:
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		case 2:
			_, _ = w.Write([]byte(`{"text":"   "}`))
		default:
			_ = json.NewEncoder(w).Encode(correctResponse{Text: strings.ToUpper(req.Text)})
		}
	}))
	defer server.Close()

	c := New(config.CorrectorConfig{URL: server.URL, MaxTokens: 4}, server.Client(), logger.Nop())
	got := c.Correct(context.Background(), "một hai  ba\nbốn năm sáu bảy tám chín")

	if want := "một hai ba bốn năm sáu BẢY TÁM CHÍN"; got != want {
		t.Errorf("Correct() = %q, want %q", got, want)
	}
}

func TestCorrectUnreachable(t *testing.T) {
	c := New(config.CorrectorConfig{URL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil, logger.Nop())
	text := "không đổi gì cả"
	if got := c.Correct(context.Background(), text); got != text {
		t.Errorf("Correct() = %q, want input unchanged", got)
	}
}

func TestCorrectBlank(t *testing.T) {
	c := New(config.CorrectorConfig{URL: "http://127.0.0.1:1"}, nil, logger.Nop())
	if got := c.Correct(context.Background(), "  "); got != "  " {
		t.Errorf("Correct() = %q", got)
	}
}
