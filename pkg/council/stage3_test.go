package council

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pkg/errors"

	"llm-council-be/pkg/llm"
)

func TestSynthesizeReturnsChairmanAnswer(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			if model != "openai/gpt-5.1" {
				t.Errorf("chairman query routed to %q", model)
			}
			return &llm.Response{Content: "the final word"}, nil
		},
	}
	engine := newTestEngine(svc)

	stage1 := []Stage1Result{{Model: "google/gemini-3-pro", Response: "answer"}}
	stage2 := []Stage2Result{{Model: "google/gemini-3-pro", Ranking: "FINAL RANKING:\n1. Response A"}}

	got := engine.Synthesize(context.Background(), "q", stage1, stage2, nil, "")

	if got.Model != "openai/gpt-5.1" {
		t.Errorf("Model = %q, want openai/gpt-5.1", got.Model)
	}
	if got.Response != "the final word" {
		t.Errorf("Response = %q, want the final word", got.Response)
	}
}

func TestSynthesizeSentinelOnFailure(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return nil, errors.New("chairman unavailable")
		},
	}
	engine := newTestEngine(svc)

	got := engine.Synthesize(context.Background(), "q", nil, nil, nil, "")

	if got.Model != "openai/gpt-5.1" {
		t.Errorf("Model = %q, want chairman id", got.Model)
	}
	if got.Response != "Error: Unable to generate final synthesis." {
		t.Errorf("Response = %q, want synthesis failure sentinel", got.Response)
	}
}

func TestBuildChairmanPromptIncludesAllSections(t *testing.T) {
	stage1 := []Stage1Result{
		{Model: "openai/gpt-5.1", Response: "light scattering"},
		{Model: "google/gemini-3-pro", Response: "rayleigh effect"},
	}
	stage2 := []Stage2Result{
		{Model: "openai/gpt-5.1", Ranking: "FINAL RANKING:\n1. Response B\n2. Response A"},
	}
	personas := []Persona{
		{Name: "Physicist", Prompt: "You are a physicist.", Description: "explains with equations"},
		{Name: "Poet", Prompt: "You are a poet.\nWrite with imagery."},
	}

	prompt := buildChairmanPrompt("why is the sky blue?", stage1, stage2, personas, "atmospheric optics")

	for _, want := range []string{
		"ORIGINAL QUESTION: why is the sky blue?",
		"DISCUSSION SUBJECT: atmospheric optics",
		"STAGE 1 - Individual Responses:",
		"Model: openai/gpt-5.1\nResponse: light scattering",
		"STAGE 2 - Peer Rankings:",
		"Model: openai/gpt-5.1\nRanking: FINAL RANKING:",
		"- openai/gpt-5.1 (persona: Physicist): explains with equations",
		"- google/gemini-3-pro (persona: Poet): You are a poet.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildChairmanPromptOmitsEmptySubjectAndPersonas(t *testing.T) {
	stage1 := []Stage1Result{{Model: "m", Response: "r"}}
	prompt := buildChairmanPrompt("q", stage1, nil, nil, "   ")

	if strings.Contains(prompt, "DISCUSSION SUBJECT") {
		t.Error("prompt contains subject block for blank subject")
	}
	if strings.Contains(prompt, "COUNCIL MEMBER PERSONAS") {
		t.Error("prompt contains persona block without personas")
	}
}

func TestSummarizePromptTruncation(t *testing.T) {
	long := strings.Repeat("a", 200) + "\nsecond line"
	got := summarizePrompt(long)
	if len(got) != 153 {
		t.Errorf("len = %d, want 153", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("summary %q missing ellipsis", got)
	}

	if got := summarizePrompt("short prompt\nrest"); got != "short prompt" {
		t.Errorf("summarizePrompt = %q, want first line", got)
	}
}

func TestSummarizePromptTruncatesOnRuneBoundary(t *testing.T) {
	got := summarizePrompt(strings.Repeat("ü", 200))
	if !utf8.ValidString(got) {
		t.Fatalf("summary is not valid UTF-8: %q", got)
	}
	if want := strings.Repeat("ü", 150) + "..."; got != want {
		t.Errorf("summarizePrompt = %q, want %q", got, want)
	}
}

func TestBuildPersonaContextCountMismatch(t *testing.T) {
	stage1 := []Stage1Result{{Model: "a"}, {Model: "b"}}
	personas := []Persona{{Name: "Only", Prompt: "p"}}
	if got := buildPersonaContext(stage1, personas); got != "" {
		t.Errorf("buildPersonaContext = %q, want empty on mismatch", got)
	}
}
