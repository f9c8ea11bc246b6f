package refiner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/llm"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

const input = "Hôm nay giá xăng giảm mạnh trên cả nước sau kỳ điều hành mới nhất của liên bộ."

func truncated(s string, ratio float64) string {
	runes := []rune(s)
	return string(runes[:int(float64(len(runes))*ratio)])
}

func newTestRefiner(fn llm.GeneratorFunc) Refiner {
	return New(fn, config.RefinerConfig{MinRatio: 0.5, MaxRatio: 1.5}, 2*time.Minute, nil, logger.Nop())
}

func TestRefine(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{
			name:  "accepted and cleaned",
			reply: "Kết quả: Hôm nay giá xăng giảm mạnh trên cả nước,sau kỳ điều hành mới nhất của liên bộ",
			want:  "Hôm nay giá xăng giảm mạnh trên cả nước, sau kỳ điều hành mới nhất của liên bộ.",
		},
		{
			name:  "truncated reply at ratio 0.3 is rejected",
			reply: truncated(input, 0.3),
			want:  input,
		},
		{
			name:  "runaway reply is rejected",
			reply: strings.Repeat(input+" ", 2),
			want:  input,
		},
		{
			name: "backend failure keeps input",
			err:  fmt.Errorf("%w: status 503", errs.ErrBackendUnavailable),
			want: input,
		},
		{
			name:  "empty reply keeps input",
			reply: " \n ",
			want:  input,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRefiner(func(context.Context, string, llm.Options) (string, error) {
				return tt.reply, tt.err
			})
			if got := r.Refine(context.Background(), input); got != tt.want {
				t.Errorf("Refine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRefineRequest(t *testing.T) {
	var gotPrompt string
	var gotOpts llm.Options
	r := newTestRefiner(func(_ context.Context, prompt string, opts llm.Options) (string, error) {
		gotPrompt, gotOpts = prompt, opts
		return input, nil
	})

	r.Refine(context.Background(), input)

	if !strings.Contains(gotPrompt, `Văn bản: "`+input+`"`) {
		t.Errorf("prompt does not quote the input: %q", gotPrompt)
	}
	if gotOpts.Timeout != 2*time.Minute || gotOpts.MaxTokens != 2000 || gotOpts.Temperature != 0.2 {
		t.Errorf("options = %+v", gotOpts)
	}
}

func TestRefineBlankInputSkipsBackend(t *testing.T) {
	called := false
	r := newTestRefiner(func(context.Context, string, llm.Options) (string, error) {
		called = true
		return "x", nil
	})
	if got := r.Refine(context.Background(), "  "); got != "  " || called {
		t.Errorf("Refine() = %q, called = %v", got, called)
	}
}

func TestAcceptReportsRejection(t *testing.T) {
	r := New(nil, config.RefinerConfig{}, time.Second, nil, logger.Nop()).(*implRefiner)

	_, err := r.accept(llm.Outcome{Text: "ngắn"}, input)
	if !errors.Is(err, errs.ErrValidationRejected) {
		t.Errorf("accept() error = %v, want ErrValidationRejected", err)
	}
	if r.minRatio != 0.5 || r.maxRatio != 1.5 {
		t.Errorf("default ratios = %v/%v", r.minRatio, r.maxRatio)
	}
}
