package refiner

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/llm"
)

const refinePrompt = `Chỉnh sửa văn bản tin tức sau:

QUY TẮC:
1. Sửa lỗi ngữ pháp và chính tả
2. Mỗi từ PHẢI cách nhau bằng dấu cách
3. Số viết liền: 1.890 → 1890
4. Ngày viết chữ: 8/1 → mùng 8 tháng 1
5. Giữ nguyên nội dung
6. Kết thúc bằng câu hoàn chỉnh

Văn bản: "%s"

Văn bản đã sửa:`

var refineOptions = llm.Options{Temperature: 0.2, MaxTokens: 2000}

// Refine asks the backend for a corrected version of text and keeps it only
// when its length stays within the configured ratio of the input.
func (r *implRefiner) Refine(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	opts := refineOptions
	opts.Timeout = r.timeout
	out := llm.Call(ctx, r.gen, fmt.Sprintf(refinePrompt, text), opts)

	refined, err := r.accept(out, text)
	if err != nil {
		r.logger.Warn(ctx, "Keeping unrefined text: %v", err)
		return text
	}
	return refined
}

// accept maps a generation outcome to the next text state.
func (r *implRefiner) accept(out llm.Outcome, original string) (string, error) {
	if !out.OK() {
		return "", out.Err
	}

	ratio := float64(utf8.RuneCountInString(out.Text)) / float64(utf8.RuneCountInString(original))
	if ratio <= r.minRatio || ratio >= r.maxRatio {
		return "", fmt.Errorf("%w: length ratio %.2f outside (%.2f, %.2f)", errs.ErrValidationRejected, ratio, r.minRatio, r.maxRatio)
	}

	cleaned := r.norm.Normalize(out.Text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: refined text is empty after cleanup", errs.ErrValidationRejected)
	}
	return cleaned, nil
}
