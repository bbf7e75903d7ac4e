package router

import (
	"context"
	"strings"
	"time"

	"llm-council-be/internal/pkg/logger"
	"llm-council-be/pkg/llm"
	"llm-council-be/pkg/llm/google"
	"llm-council-be/pkg/llm/openai"
	"llm-council-be/pkg/llm/openrouter"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const xaiBaseURL = "https://api.x.ai/v1"

// Config carries the provider credentials. A missing native key means models
// with that prefix route through the OpenRouter fallback.
type Config struct {
	OpenAIKey     string
	XAIKey        string
	GoogleKey     string
	OpenRouterKey string
}

// Router dispatches model queries to the native provider for the model's
// prefix, falling back to OpenRouter otherwise. The registry is built once at
// startup; there is no lazy per-call provider construction.
type Router struct {
	native   map[string]llm.Provider
	fallback llm.Provider
	log      logger.ILogger
}

var _ llm.QueryService = (*Router)(nil)

func New(cfg Config, log logger.ILogger) *Router {
	native := make(map[string]llm.Provider)
	if cfg.OpenAIKey != "" {
		native["openai"] = openai.NewProvider(cfg.OpenAIKey)
	}
	if cfg.XAIKey != "" {
		native["x-ai"] = openai.NewProviderWithBaseURL(cfg.XAIKey, xaiBaseURL)
	}
	if cfg.GoogleKey != "" {
		native["google"] = google.NewProvider(cfg.GoogleKey)
	}
	return &Router{
		native:   native,
		fallback: openrouter.NewProvider(cfg.OpenRouterKey),
		log:      log,
	}
}

// Query resolves the provider for the model and issues a single call bounded
// by timeout. The timeout is per call; callers never cancel mid-flight.
func (r *Router) Query(ctx context.Context, model string, messages []llm.Message, timeout time.Duration) (*llm.Response, error) {
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	provider, apiModel := r.resolve(model)
	resp, err := provider.Query(qctx, apiModel, messages)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", model)
	}
	return resp, nil
}

// QueryMany fans out one query per model concurrently and waits for all of
// them to settle. Results are written by input index, so the returned slice
// matches the order of models, not the order of completion. Individual
// failures are recorded in-place, never propagated.
func (r *Router) QueryMany(ctx context.Context, models []string, messages [][]llm.Message, timeout time.Duration) []llm.QueryResult {
	results := make([]llm.QueryResult, len(models))

	grp, gctx := errgroup.WithContext(ctx)
	for i := range models {
		grp.Go(func() error {
			resp, err := r.Query(gctx, models[i], messages[i], timeout)
			if err != nil {
				r.log.Warn("llm-router", "model query failed", map[string]interface{}{
					"model": models[i],
					"error": err.Error(),
				})
			}
			results[i] = llm.QueryResult{Model: models[i], Response: resp, Err: err}
			return nil
		})
	}
	_ = grp.Wait()

	return results
}

// resolve returns the provider for the model plus the identifier to send on
// the wire. Native APIs take the prefix-stripped name; the fallback gateway
// routes on the full prefixed identifier.
func (r *Router) resolve(model string) (llm.Provider, string) {
	prefix, rest, found := strings.Cut(model, "/")
	if found {
		if p, ok := r.native[strings.ToLower(prefix)]; ok {
			return p, rest
		}
	}
	return r.fallback, model
}
