package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/newscast/internal/logger"
)

// ResolveEndpoint probes each candidate's /api/tags in order and returns the
// first one answering 200. When none answers, the first candidate is returned
// with ok=false so the caller can still start and let each stage degrade.
func ResolveEndpoint(ctx context.Context, client *http.Client, candidates []string, timeout time.Duration, log logger.Logger) (url string, ok bool) {
	if len(candidates) == 0 {
		return "", false
	}
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	for _, candidate := range candidates {
		candidate = strings.TrimRight(strings.TrimSpace(candidate), "/")
		if candidate == "" {
			continue
		}
		if probe(ctx, client, candidate, timeout) {
			log.Info(ctx, "Ollama connected: %s", candidate)
			return candidate, true
		}
		log.Debug(ctx, "Ollama not reachable at %s", candidate)
	}

	primary := strings.TrimRight(strings.TrimSpace(candidates[0]), "/")
	log.Warn(ctx, "Could not connect to Ollama at any URL, using %s (may fail if not available)", primary)
	return primary, false
}

func probe(ctx context.Context, client *http.Client, baseURL string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
