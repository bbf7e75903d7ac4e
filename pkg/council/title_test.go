package council

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"llm-council-be/pkg/llm"
)

func TestGenerateTitleSanitizesOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain title", raw: "Sky Color Physics", want: "Sky Color Physics"},
		{name: "strips quotes", raw: `"Sky Color Physics"`, want: "Sky Color Physics"},
		{name: "strips single quotes and whitespace", raw: "  'Sky Color'  ", want: "Sky Color"},
		{
			name: "clamps overlong titles",
			raw:  strings.Repeat("x", 60),
			want: strings.Repeat("x", 47) + "...",
		},
		{
			name: "clamps multi-byte titles on rune boundaries",
			raw:  strings.Repeat("日", 60),
			want: strings.Repeat("日", 47) + "...",
		},
		{name: "blank output falls back", raw: "   ", want: "New Conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeQueryService{
				respond: func(model string, messages []llm.Message) (*llm.Response, error) {
					return &llm.Response{Content: tt.raw}, nil
				},
			}
			engine := newTestEngine(svc)

			got := engine.GenerateTitle(context.Background(), "why is the sky blue?")
			if got != tt.want {
				t.Errorf("GenerateTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateTitleFallbackOnError(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return nil, errors.New("model offline")
		},
	}
	engine := newTestEngine(svc)

	if got := engine.GenerateTitle(context.Background(), "q"); got != "New Conversation" {
		t.Errorf("GenerateTitle = %q, want fallback", got)
	}
}

func TestGenerateTitleUsesTitleModel(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return &llm.Response{Content: "Ok"}, nil
		},
	}
	engine := newTestEngine(svc)

	engine.GenerateTitle(context.Background(), "first message")

	calls := svc.callsFor("google/gemini-3-flash")
	if len(calls) != 1 {
		t.Fatalf("title model calls = %d, want 1", len(calls))
	}
	if !strings.Contains(calls[0].Messages[0].Content, "first message") {
		t.Error("title prompt missing user's first message")
	}
}
