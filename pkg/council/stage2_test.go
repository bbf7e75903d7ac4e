package council

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"llm-council-be/pkg/llm"
)

func TestCollectRankingsAssignsLabelsInStage1Order(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return &llm.Response{Content: "FINAL RANKING:\n1. Response B\n2. Response A"}, nil
		},
	}
	engine := newTestEngine(svc)

	stage1 := []Stage1Result{
		{Model: "openai/gpt-5.1", Response: "first answer"},
		{Model: "google/gemini-3-pro", Response: "second answer"},
	}
	members := []Member{
		{Model: "openai/gpt-5.1"},
		{Model: "google/gemini-3-pro"},
	}

	results, labelToModel := engine.CollectRankings(context.Background(), "q", stage1, members)

	if labelToModel["Response A"] != "openai/gpt-5.1" {
		t.Errorf("Response A -> %q, want openai/gpt-5.1", labelToModel["Response A"])
	}
	if labelToModel["Response B"] != "google/gemini-3-pro" {
		t.Errorf("Response B -> %q, want google/gemini-3-pro", labelToModel["Response B"])
	}
	if len(results) != 2 {
		t.Fatalf("ranking count = %d, want 2", len(results))
	}
	for _, r := range results {
		want := []string{"Response B", "Response A"}
		if len(r.ParsedRanking) != 2 || r.ParsedRanking[0] != want[0] || r.ParsedRanking[1] != want[1] {
			t.Errorf("ParsedRanking = %v, want %v", r.ParsedRanking, want)
		}
	}
}

func TestCollectRankingsPromptContainsAnonymizedAnswers(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return &llm.Response{Content: "FINAL RANKING:\n1. Response A"}, nil
		},
	}
	engine := newTestEngine(svc)

	stage1 := []Stage1Result{{Model: "openai/gpt-5.1", Response: "the sky scatters blue light"}}
	members := []Member{{Model: "openai/gpt-5.1"}}

	engine.CollectRankings(context.Background(), "why is the sky blue?", stage1, members)

	calls := svc.callsFor("openai/gpt-5.1")
	if len(calls) != 1 {
		t.Fatalf("call count = %d, want 1", len(calls))
	}
	prompt := calls[0].Messages[len(calls[0].Messages)-1].Content
	if !strings.Contains(prompt, "Question: why is the sky blue?") {
		t.Error("prompt missing original question")
	}
	if !strings.Contains(prompt, "Response A:\nthe sky scatters blue light") {
		t.Error("prompt missing labeled answer")
	}
	if strings.Contains(prompt, "openai/gpt-5.1") {
		t.Error("prompt leaks model identity")
	}
}

func TestCollectRankingsAsksEveryMemberEvenNonResponders(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return &llm.Response{Content: "FINAL RANKING:\n1. Response A"}, nil
		},
	}
	engine := newTestEngine(svc)

	// google answered nothing in stage 1 but still gets to rank.
	stage1 := []Stage1Result{{Model: "openai/gpt-5.1", Response: "answer"}}
	members := []Member{
		{Model: "openai/gpt-5.1"},
		{Model: "google/gemini-3-pro"},
	}

	results, _ := engine.CollectRankings(context.Background(), "q", stage1, members)

	if svc.callCount() != 2 {
		t.Errorf("call count = %d, want 2", svc.callCount())
	}
	if len(results) != 2 {
		t.Errorf("ranking count = %d, want 2", len(results))
	}
}

func TestCollectRankingsDropsFailedRankers(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			if model == "google/gemini-3-pro" {
				return nil, errors.New("timeout")
			}
			return &llm.Response{Content: "FINAL RANKING:\n1. Response A"}, nil
		},
	}
	engine := newTestEngine(svc)

	stage1 := []Stage1Result{{Model: "openai/gpt-5.1", Response: "answer"}}
	members := []Member{
		{Model: "openai/gpt-5.1"},
		{Model: "google/gemini-3-pro"},
	}

	results, _ := engine.CollectRankings(context.Background(), "q", stage1, members)

	if len(results) != 1 {
		t.Fatalf("ranking count = %d, want 1", len(results))
	}
	if results[0].Model != "openai/gpt-5.1" {
		t.Errorf("surviving ranker = %q, want openai/gpt-5.1", results[0].Model)
	}
}

func TestAssignLabels(t *testing.T) {
	labels := assignLabels(3)
	want := []string{"Response A", "Response B", "Response C"}
	if len(labels) != 3 {
		t.Fatalf("label count = %d, want 3", len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}
