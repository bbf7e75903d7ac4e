package router

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"llm-council-be/internal/pkg/logger"
	"llm-council-be/pkg/llm"
)

// stubProvider records what was asked of it and returns a scripted answer.
type stubProvider struct {
	mu     sync.Mutex
	models []string
	answer string
	err    error
	delay  time.Duration
}

func (s *stubProvider) Query(ctx context.Context, model string, messages []llm.Message) (*llm.Response, error) {
	s.mu.Lock()
	s.models = append(s.models, model)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.answer}, nil
}

func (s *stubProvider) ListModels(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubProvider) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.models...)
}

func newStubRouter(native map[string]llm.Provider, fallback llm.Provider) *Router {
	return &Router{
		native:   native,
		fallback: fallback,
		log:      logger.NewNopLogger(),
	}
}

func TestResolveNativePrefixStripsNamespace(t *testing.T) {
	openaiStub := &stubProvider{answer: "ok"}
	fallback := &stubProvider{answer: "via gateway"}
	r := newStubRouter(map[string]llm.Provider{"openai": openaiStub}, fallback)

	provider, apiModel := r.resolve("openai/gpt-5.1")
	if provider != openaiStub {
		t.Error("resolve picked wrong provider for native prefix")
	}
	if apiModel != "gpt-5.1" {
		t.Errorf("apiModel = %q, want gpt-5.1", apiModel)
	}
}

func TestResolveUnknownPrefixUsesFallbackWithFullId(t *testing.T) {
	fallback := &stubProvider{answer: "via gateway"}
	r := newStubRouter(map[string]llm.Provider{}, fallback)

	provider, apiModel := r.resolve("anthropic/claude-sonnet-4.5")
	if provider != fallback {
		t.Error("resolve did not pick fallback")
	}
	if apiModel != "anthropic/claude-sonnet-4.5" {
		t.Errorf("apiModel = %q, want full prefixed id", apiModel)
	}
}

func TestResolvePrefixIsCaseInsensitive(t *testing.T) {
	openaiStub := &stubProvider{}
	r := newStubRouter(map[string]llm.Provider{"openai": openaiStub}, &stubProvider{})

	provider, _ := r.resolve("OpenAI/gpt-5.1")
	if provider != openaiStub {
		t.Error("prefix match should ignore case")
	}
}

func TestResolveUnprefixedModelUsesFallback(t *testing.T) {
	fallback := &stubProvider{}
	r := newStubRouter(map[string]llm.Provider{"openai": &stubProvider{}}, fallback)

	provider, apiModel := r.resolve("gpt-5.1")
	if provider != fallback {
		t.Error("unprefixed model should use fallback")
	}
	if apiModel != "gpt-5.1" {
		t.Errorf("apiModel = %q, want gpt-5.1", apiModel)
	}
}

func TestQueryManyPreservesInputOrder(t *testing.T) {
	slow := &stubProvider{answer: "slow answer", delay: 50 * time.Millisecond}
	fast := &stubProvider{answer: "fast answer"}
	r := newStubRouter(map[string]llm.Provider{"openai": slow, "google": fast}, &stubProvider{})

	models := []string{"openai/gpt-5.1", "google/gemini-3-pro"}
	messages := [][]llm.Message{
		{{Role: llm.RoleUser, Content: "q"}},
		{{Role: llm.RoleUser, Content: "q"}},
	}

	results := r.QueryMany(context.Background(), models, messages, time.Second)

	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	if results[0].Model != "openai/gpt-5.1" || results[0].Response.Content != "slow answer" {
		t.Errorf("results[0] = %+v, want slow answer first", results[0])
	}
	if results[1].Model != "google/gemini-3-pro" || results[1].Response.Content != "fast answer" {
		t.Errorf("results[1] = %+v, want fast answer second", results[1])
	}
}

func TestQueryManyRecordsFailuresInPlace(t *testing.T) {
	healthy := &stubProvider{answer: "ok"}
	broken := &stubProvider{err: errors.New("upstream 500")}
	r := newStubRouter(map[string]llm.Provider{"openai": healthy, "google": broken}, &stubProvider{})

	models := []string{"openai/gpt-5.1", "google/gemini-3-pro"}
	messages := [][]llm.Message{
		{{Role: llm.RoleUser, Content: "q"}},
		{{Role: llm.RoleUser, Content: "q"}},
	}

	results := r.QueryMany(context.Background(), models, messages, time.Second)

	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v, want nil", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("results[1].Err = nil, want error")
	}
	if results[1].Model != "google/gemini-3-pro" {
		t.Errorf("failed slot keeps model id, got %q", results[1].Model)
	}
}

func TestQueryTimeoutIsEnforced(t *testing.T) {
	slow := &stubProvider{answer: "late", delay: 200 * time.Millisecond}
	r := newStubRouter(map[string]llm.Provider{"openai": slow}, &stubProvider{})

	_, err := r.Query(context.Background(), "openai/gpt-5.1", []llm.Message{{Role: llm.RoleUser, Content: "q"}}, 10*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestQueryStripsPrefixOnTheWire(t *testing.T) {
	openaiStub := &stubProvider{answer: "ok"}
	r := newStubRouter(map[string]llm.Provider{"openai": openaiStub}, &stubProvider{})

	_, err := r.Query(context.Background(), "openai/gpt-5.1", []llm.Message{{Role: llm.RoleUser, Content: "q"}}, time.Second)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	seen := openaiStub.seen()
	if len(seen) != 1 || seen[0] != "gpt-5.1" {
		t.Errorf("wire model = %v, want [gpt-5.1]", seen)
	}
}
