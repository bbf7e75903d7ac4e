package openrouter

import (
	"context"
	"sort"

	"llm-council-be/pkg/llm"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is OpenRouter's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Provider is the gateway fallback for models without a wired native SDK.
// OpenRouter speaks the OpenAI chat completion protocol and expects the full
// provider-prefixed model identifier (e.g. "anthropic/claude-sonnet-4.5").
type Provider struct {
	client *openai.Client
}

func NewProvider(apiKey string) *Provider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	return &Provider{client: openai.NewClientWithConfig(cfg)}
}

func (p *Provider) Query(ctx context.Context, model string, messages []llm.Message) (*llm.Response, error) {
	req := openai.ChatCompletionRequest{Model: model}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "openrouter: query model %s", model)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.Errorf("openrouter: no choices in response for model %s", model)
	}
	return &llm.Response{Content: resp.Choices[0].Message.Content}, nil
}

func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "openrouter: list models")
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}
