package catalog

import (
	"context"
	"sync"
	"time"

	"llm-council-be/internal/pkg/logger"
	"llm-council-be/pkg/llm"
	"llm-council-be/pkg/llm/google"
	"llm-council-be/pkg/llm/openai"
	"llm-council-be/pkg/llm/openrouter"
	"llm-council-be/pkg/llm/router"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const (
	cacheKey   = "providers_models"
	DefaultTTL = 5 * time.Minute
)

// staticFallback is served for providers without a wired list API, or when a
// provider's list call fails.
var staticFallback = map[string][]string{
	"openai": {
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
		"gpt-5.1",
	},
	"anthropic": {
		"claude-sonnet-4",
		"claude-sonnet-4.5",
		"claude-3-5-sonnet-20241022",
		"claude-3-opus-20240229",
		"claude-3-haiku-20240307",
	},
	"google": {
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
	},
	"x-ai": {
		"grok-4",
		"grok-3",
		"grok-2",
	},
	"openrouter": {
		"openai/gpt-4o",
		"anthropic/claude-sonnet-4",
		"google/gemini-2.5-flash",
	},
}

// Catalog serves the provider → models listing with a single time-boxed cache
// slot. It queries list APIs where a key is configured and degrades to the
// static table otherwise.
type Catalog struct {
	listers map[string]llm.Provider
	cache   *cache.Cache
	log     logger.ILogger
}

func New(cfg router.Config, ttl time.Duration, log logger.ILogger) *Catalog {
	listers := make(map[string]llm.Provider)
	if cfg.OpenAIKey != "" {
		listers["openai"] = openai.NewProvider(cfg.OpenAIKey)
	}
	if cfg.XAIKey != "" {
		listers["x-ai"] = openai.NewProviderWithBaseURL(cfg.XAIKey, "https://api.x.ai/v1")
	}
	if cfg.GoogleKey != "" {
		listers["google"] = google.NewProvider(cfg.GoogleKey)
	}
	if cfg.OpenRouterKey != "" {
		listers["openrouter"] = openrouter.NewProvider(cfg.OpenRouterKey)
	}

	return &Catalog{
		listers: listers,
		cache:   cache.New(ttl, 2*ttl),
		log:     log,
	}
}

// Get returns the providers/models mapping, refreshing the cache slot when it
// has expired. Never fails: providers that cannot be listed fall back to the
// static table.
func (c *Catalog) Get(ctx context.Context) map[string][]string {
	if x, found := c.cache.Get(cacheKey); found {
		return x.(map[string][]string)
	}

	models := c.fetch(ctx)
	c.cache.Set(cacheKey, models, cache.DefaultExpiration)
	return models
}

// Refresh clears the cache slot and refetches.
func (c *Catalog) Refresh(ctx context.Context) map[string][]string {
	c.cache.Delete(cacheKey)
	return c.Get(ctx)
}

func (c *Catalog) fetch(ctx context.Context) map[string][]string {
	result := make(map[string][]string, len(staticFallback))
	for provider, models := range staticFallback {
		result[provider] = models
	}

	var mu sync.Mutex
	grp, gctx := errgroup.WithContext(ctx)
	for provider, lister := range c.listers {
		grp.Go(func() error {
			ids, err := lister.ListModels(gctx)
			if err != nil || len(ids) == 0 {
				c.log.Warn("catalog", "model list fetch failed, using static fallback", map[string]interface{}{
					"provider": provider,
					"error":    errString(err),
				})
				return nil
			}
			mu.Lock()
			result[provider] = ids
			mu.Unlock()
			return nil
		})
	}
	_ = grp.Wait()

	return result
}

func errString(err error) string {
	if err == nil {
		return "empty model list"
	}
	return err.Error()
}
