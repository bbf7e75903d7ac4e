package council

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-council-be/pkg/llm"
)

func scriptedCouncil(t *testing.T) (*fakeQueryService, []Member) {
	t.Helper()
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			prompt := messages[len(messages)-1].Content
			switch {
			case model == "openai/gpt-5.1":
				// Chairman model, not a member in this script.
				return &llm.Response{Content: "synthesized answer"}, nil
			case model == "google/gemini-3-flash":
				return &llm.Response{Content: "Sky Color"}, nil
			case strings.HasPrefix(prompt, "You are evaluating"):
				return &llm.Response{Content: "FINAL RANKING:\n1. Response B\n2. Response A"}, nil
			default:
				return &llm.Response{Content: "answer from " + model}, nil
			}
		},
	}
	members := []Member{
		{Model: "anthropic/claude-sonnet-4.5"},
		{Model: "x-ai/grok-4"},
	}
	return svc, members
}

func TestRunProducesFullResult(t *testing.T) {
	svc, members := scriptedCouncil(t)
	engine := newTestEngine(svc)

	result := engine.Run(context.Background(), "why is the sky blue?", members, "")

	require.Len(t, result.Stage1, 2)
	assert.Equal(t, "anthropic/claude-sonnet-4.5", result.Stage1[0].Model)
	assert.Equal(t, "x-ai/grok-4", result.Stage1[1].Model)

	require.Len(t, result.Stage2, 2)
	assert.Equal(t, []string{"Response B", "Response A"}, result.Stage2[0].ParsedRanking)

	assert.Equal(t, "openai/gpt-5.1", result.Stage3.Model)
	assert.Equal(t, "synthesized answer", result.Stage3.Response)

	assert.Equal(t, "anthropic/claude-sonnet-4.5", result.Metadata.LabelToModel["Response A"])
	assert.Equal(t, "x-ai/grok-4", result.Metadata.LabelToModel["Response B"])

	require.Len(t, result.Metadata.AggregateRankings, 2)
	assert.Equal(t, "x-ai/grok-4", result.Metadata.AggregateRankings[0].Model)
	assert.Equal(t, 1.0, result.Metadata.AggregateRankings[0].AverageRank)
}

func TestRunNoMembersSentinel(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			t.Fatal("no queries expected")
			return nil, nil
		},
	}
	engine := newTestEngine(svc)

	result := engine.Run(context.Background(), "q", nil, "")

	assert.Empty(t, result.Stage1)
	assert.Empty(t, result.Stage2)
	assert.Equal(t, "error", result.Stage3.Model)
	assert.Equal(t, "No models selected. Add at least one persona to the council.", result.Stage3.Response)
	assert.NotNil(t, result.Metadata.LabelToModel)
	assert.Zero(t, svc.callCount())
}

func TestRunAllFailedSentinel(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return nil, errors.New("provider down")
		},
	}
	engine := newTestEngine(svc)

	result := engine.Run(context.Background(), "q", []Member{{Model: "x-ai/grok-4"}}, "")

	assert.Equal(t, "error", result.Stage3.Model)
	assert.Equal(t, "All models failed to respond. Please try again.", result.Stage3.Response)
	// Only the stage 1 fan-out ran; no rankings, no synthesis.
	assert.Equal(t, 1, svc.callCount())
}

func TestRunStreamEventOrder(t *testing.T) {
	svc, members := scriptedCouncil(t)
	engine := newTestEngine(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []Event
	for ev := range engine.RunStream(ctx, "why is the sky blue?", members, "", true) {
		got = append(got, ev)
	}

	types := make([]EventType, len(got))
	for i, ev := range got {
		types[i] = ev.Type
	}
	assert.Equal(t, []EventType{
		EventStage1Start,
		EventStage1Complete,
		EventStage2Start,
		EventStage2Complete,
		EventStage3Start,
		EventStage3Complete,
		EventTitleComplete,
		EventComplete,
	}, types)

	require.Len(t, got[1].Stage1, 2)
	require.NotNil(t, got[3].Metadata)
	assert.Len(t, got[3].Metadata.AggregateRankings, 2)
	require.NotNil(t, got[5].Stage3)
	assert.Equal(t, "synthesized answer", got[5].Stage3.Response)
	assert.Equal(t, "Sky Color", got[6].Title)
}

func TestRunStreamWithoutTitle(t *testing.T) {
	svc, members := scriptedCouncil(t)
	engine := newTestEngine(svc)

	for ev := range engine.RunStream(context.Background(), "why is the sky blue?", members, "", false) {
		if ev.Type == EventTitleComplete {
			t.Error("unexpected title event")
		}
	}
	if calls := svc.callsFor("google/gemini-3-flash"); len(calls) != 0 {
		t.Errorf("title model calls = %d, want 0", len(calls))
	}
}

func TestRunStreamNoMembersEmitsError(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return &llm.Response{Content: "x"}, nil
		},
	}
	engine := newTestEngine(svc)

	var got []Event
	for ev := range engine.RunStream(context.Background(), "q", nil, "", false) {
		got = append(got, ev)
	}

	require.Len(t, got, 1)
	assert.Equal(t, EventError, got[0].Type)
	assert.Equal(t, "No models selected. Add at least one persona to the council.", got[0].Message)
}

func TestRunStreamPanicEmitsErrorWithDescription(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			panic("provider registry corrupted")
		},
	}
	engine := newTestEngine(svc)

	var got []Event
	for ev := range engine.RunStream(context.Background(), "q", []Member{{Model: "x-ai/grok-4"}}, "", false) {
		got = append(got, ev)
	}

	require.Len(t, got, 2)
	assert.Equal(t, EventStage1Start, got[0].Type)
	assert.Equal(t, EventError, got[1].Type)
	assert.Equal(t, "internal error: provider registry corrupted", got[1].Message)
}

func TestRunStreamAllFailedEmitsError(t *testing.T) {
	svc := &fakeQueryService{
		respond: func(model string, messages []llm.Message) (*llm.Response, error) {
			return nil, errors.New("down")
		},
	}
	engine := newTestEngine(svc)

	var got []Event
	for ev := range engine.RunStream(context.Background(), "q", []Member{{Model: "x-ai/grok-4"}}, "", false) {
		got = append(got, ev)
	}

	require.Len(t, got, 2)
	assert.Equal(t, EventStage1Start, got[0].Type)
	assert.Equal(t, EventError, got[1].Type)
	assert.Equal(t, "All models failed to respond. Please try again.", got[1].Message)
}
