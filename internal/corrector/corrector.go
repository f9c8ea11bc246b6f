package corrector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/newscast/internal/errs"
)

type correctRequest struct {
	Text      string `json:"text"`
	MaxTokens int    `json:"max_new_tokens"`
}

type correctResponse struct {
	Text string `json:"text"`
}

// Correct splits text on word boundaries into pieces of at most maxWords
// words, corrects each piece and joins the results with single spaces.
func (c *implCorrector) Correct(ctx context.Context, text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	pieces := make([]string, 0, len(words)/c.maxWords+1)
	for start := 0; start < len(words); start += c.maxWords {
		end := min(start+c.maxWords, len(words))
		piece := strings.Join(words[start:end], " ")

		corrected, err := c.correctPiece(ctx, piece)
		if err != nil {
			c.logger.Warn(ctx, "Correction failed for words %d-%d, keeping original: %v", start+1, end, err)
			pieces = append(pieces, piece)
			continue
		}
		pieces = append(pieces, corrected)
	}
	return strings.Join(pieces, " ")
}

func (c *implCorrector) correctPiece(ctx context.Context, piece string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(correctRequest{Text: piece, MaxTokens: c.maxTokens})
	if err != nil {
		return "", fmt.Errorf("marshal correction payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: corrector: %v", errs.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: corrector returned %s: %s", errs.ErrBackendUnavailable, resp.Status, strings.TrimSpace(string(payload)))
	}

	var out correctResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode corrector response: %v", errs.ErrBackendUnavailable, err)
	}

	corrected := strings.TrimSpace(out.Text)
	if corrected == "" {
		return "", fmt.Errorf("%w: corrector returned empty text", errs.ErrValidationRejected)
	}
	return corrected, nil
}
