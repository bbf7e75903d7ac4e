package council

import (
	"context"
	"fmt"
	"strings"
	"time"

	"llm-council-be/pkg/llm"
)

const (
	titleTimeout   = 30 * time.Second
	titleMaxLength = 50
	fallbackTitle  = "New Conversation"
)

const titlePrompt = `Generate a very short title (3-6 words) summarizing what this conversation is about, based on the user's first message. Respond with ONLY the title, no quotes, no punctuation at the end.

User's message: %s`

// GenerateTitle asks the title model for a short conversation title derived
// from the first user message. Failures degrade to a fixed fallback title and
// never abort the surrounding flow.
func (e *Engine) GenerateTitle(ctx context.Context, firstMessage string) string {
	messages := []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf(titlePrompt, firstMessage)}}

	resp, err := e.querySvc.Query(ctx, e.titleModel, messages, titleTimeout)
	if err != nil || resp == nil || resp.Content == "" {
		e.log.Warn("council", "title generation failed", map[string]interface{}{
			"model": e.titleModel,
			"error": errText(err),
		})
		return fallbackTitle
	}

	return sanitizeTitle(resp.Content)
}

// sanitizeTitle strips wrapping whitespace and quote characters, then clamps
// overlong titles to 50 characters with an ellipsis.
func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	title = strings.TrimSpace(title)
	if title == "" {
		return fallbackTitle
	}
	if runes := []rune(title); len(runes) > titleMaxLength {
		title = string(runes[:titleMaxLength-3]) + "..."
	}
	return title
}
