package google

import (
	"context"
	"slices"
	"sort"
	"strings"

	"llm-council-be/pkg/llm"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// Provider queries the Gemini API through the google genai SDK.
type Provider struct {
	apiKey string
}

func NewProvider(apiKey string) *Provider {
	return &Provider{apiKey: apiKey}
}

func (p *Provider) Query(ctx context.Context, model string, messages []llm.Message) (*llm.Response, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "google: create client")
	}

	// Gemini takes the system prompt as a config-level instruction, not as a
	// message. Only the first user message is sent as content.
	var system, user string
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = m.Content
		case llm.RoleUser:
			if user == "" {
				user = m.Content
			}
		}
	}
	if user == "" {
		return nil, errors.Errorf("google: no user message for model %s", model)
	}

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(user), cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "google: query model %s", model)
	}
	return &llm.Response{Content: resp.Text()}, nil
}

func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "google: create client")
	}

	var ids []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, errors.Wrap(err, "google: list models")
		}
		if id, ok := generativeModelID(model.Name, model.SupportedActions); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return slices.Compact(ids), nil
}

// generativeModelID normalizes a listed model name and reports whether the
// model serves chat generation. The API returns names like
// "models/gemini-2.5-pro"; embedding and code models are excluded.
func generativeModelID(name string, actions []string) (string, bool) {
	id := strings.TrimPrefix(name, "models/")
	lower := strings.ToLower(id)
	if strings.Contains(lower, "embedding") || strings.Contains(lower, "code") {
		return "", false
	}
	if len(actions) > 0 {
		supported := false
		for _, a := range actions {
			if a == "generateContent" {
				supported = true
				break
			}
		}
		if !supported {
			return "", false
		}
	}
	return id, true
}
