package llm

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

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Ollama calls the /api/generate endpoint of an Ollama server.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Generator = (*Ollama)(nil)

// NewOllama builds a client for an already resolved base URL. Per-call
// timeouts come from Options, so the default http.Client has none.
func NewOllama(baseURL, model string, client *http.Client) *Ollama {
	if client == nil {
		client = &http.Client{}
	}
	return &Ollama{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:      model,
		httpClient: client,
	}
}

// BaseURL returns the endpoint this client posts to.
func (o *Ollama) BaseURL() string {
	return o.baseURL
}

func (o *Ollama) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: ollama generate: %v", errs.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: ollama returned %s: %s", errs.ErrBackendUnavailable, resp.Status, strings.TrimSpace(string(payload)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode ollama response: %v", errs.ErrBackendUnavailable, err)
	}
	return out.Response, nil
}
