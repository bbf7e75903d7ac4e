package openai

import (
	"context"
	"sort"
	"strings"

	"llm-council-be/pkg/llm"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// Provider queries OpenAI-compatible chat completion APIs. It also serves
// x-ai models: same wire protocol, different base URL and key.
type Provider struct {
	client *openai.Client
}

func NewProvider(apiKey string) *Provider {
	return &Provider{client: openai.NewClient(apiKey)}
}

// NewProviderWithBaseURL builds a provider against a non-default endpoint
// (e.g. https://api.x.ai/v1).
func NewProviderWithBaseURL(apiKey, baseURL string) *Provider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Provider{client: openai.NewClientWithConfig(cfg)}
}

func (p *Provider) Query(ctx context.Context, model string, messages []llm.Message) (*llm.Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: toChatMessages(messages),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "openai: query model %s", model)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.Errorf("openai: no choices in response for model %s", model)
	}
	return &llm.Response{Content: resp.Choices[0].Message.Content}, nil
}

func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "openai: list models")
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		// Skip fine-tuned models
		if strings.HasPrefix(m.ID, "ft:") {
			continue
		}
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func toChatMessages(messages []llm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}
