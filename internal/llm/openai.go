package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/newscast/internal/errs"
)

// OpenAI generates text through any OpenAI-compatible chat completions API.
type OpenAI struct {
	model  string
	client openai.Client
}

var _ Generator = (*OpenAI)(nil)

// NewOpenAI builds a client; an empty baseURL targets api.openai.com.
func NewOpenAI(apiKey, baseURL, model string, extra ...option.RequestOption) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, extra...)
	return &OpenAI{model: model, client: openai.NewClient(opts...)}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: openai chat completion: %v", errs.ErrBackendUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai: empty choices", errs.ErrBackendUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
