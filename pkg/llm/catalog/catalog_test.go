package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"llm-council-be/internal/pkg/logger"
	"llm-council-be/pkg/llm/router"
)

func TestNewRegistersListersPerConfiguredKey(t *testing.T) {
	c := New(router.Config{
		OpenAIKey:     "sk-openai",
		XAIKey:        "xai-key",
		GoogleKey:     "google-key",
		OpenRouterKey: "or-key",
	}, time.Minute, logger.NewNopLogger())

	for _, provider := range []string{"openai", "x-ai", "google", "openrouter"} {
		assert.Contains(t, c.listers, provider)
	}
}

func TestNewSkipsListersWithoutKeys(t *testing.T) {
	c := New(router.Config{}, time.Minute, logger.NewNopLogger())
	assert.Empty(t, c.listers)
}
