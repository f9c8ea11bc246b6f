package synth

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/newscast/internal/errs"
)

type synthesizeRequest struct {
	Text        string  `json:"text"`
	Voice       string  `json:"voice"`
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
	SampleRate  int     `json:"sample_rate"`
}

type voicesResponse struct {
	Voices []string `json:"voices"`
}

// PrepareText turns the "..." pauses of an assembled script into plain
// sentence breaks, which the voice model reads more naturally.
func PrepareText(text string) string {
	text = strings.ReplaceAll(text, " ... ", ". ")
	text = strings.ReplaceAll(text, "... ", ". ")
	return strings.ReplaceAll(text, ".. ", ". ")
}

func (s *implSynthesizer) SampleRate() int {
	return s.sampleRate
}

// Synthesize posts the prepared text to /synthesize and decodes the
// little-endian PCM body. Every failure wraps errs.ErrSynthesis.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]int16, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("%w: no tts url configured", errs.ErrSynthesis)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty script", errs.ErrSynthesis)
	}

	resolved := ResolveVoice(voice, s.voices(ctx))
	if !strings.EqualFold(resolved, voice) {
		s.logger.Warn(ctx, "Voice %q not available, using %s", voice, resolved)
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:        PrepareText(text),
		Voice:       resolved,
		Temperature: s.temperature,
		TopK:        s.topK,
		SampleRate:  s.sampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal tts payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tts request: %v", errs.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: tts returned %s: %s", errs.ErrSynthesis, resp.Status, strings.TrimSpace(string(payload)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read tts audio: %v", errs.ErrSynthesis, err)
	}
	samples, err := decodePCM(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSynthesis, err)
	}

	s.logger.Info(ctx, "Synthesized %d samples with voice %s", len(samples), resolved)
	return samples, nil
}

// voices asks the service for its preset names once. A failure leaves the
// list empty, so the requested voice is sent as is.
func (s *implSynthesizer) voices(ctx context.Context) []string {
	s.voicesOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/voices", nil)
		if err != nil {
			return
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.logger.Debug(ctx, "Voice list unavailable: %v", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return
		}
		var out voicesResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err == nil {
			s.available = out.Voices
		}
	})
	return s.available
}

func decodePCM(raw []byte) ([]int16, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("tts returned no audio")
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("tts audio has odd length %d", len(raw))
	}
	samples := make([]int16, len(raw)/2)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}
	return samples, nil
}
