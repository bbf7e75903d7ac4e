package council

import (
	"time"

	"llm-council-be/internal/pkg/logger"
	"llm-council-be/pkg/llm"
)

// Engine orchestrates the three-stage council deliberation over a panel of
// models. It owns no per-run state: every run creates its results fresh.
type Engine struct {
	querySvc   llm.QueryService
	chairman   string
	titleModel string
	timeout    time.Duration
	log        logger.ILogger
}

func NewEngine(querySvc llm.QueryService, chairman, titleModel string, timeout time.Duration, log logger.ILogger) *Engine {
	return &Engine{
		querySvc:   querySvc,
		chairman:   chairman,
		titleModel: titleModel,
		timeout:    timeout,
		log:        log,
	}
}

// buildMessages assembles the message sequence for one member, prepending the
// persona system prompt when present.
func buildMessages(userContent string, persona *Persona) []llm.Message {
	if persona != nil && persona.Prompt != "" {
		return []llm.Message{
			{Role: llm.RoleSystem, Content: persona.Prompt},
			{Role: llm.RoleUser, Content: userContent},
		}
	}
	return []llm.Message{{Role: llm.RoleUser, Content: userContent}}
}

// memberMessages builds one message sequence per member for the same content.
func memberMessages(content string, members []Member) ([]string, [][]llm.Message) {
	models := make([]string, len(members))
	messages := make([][]llm.Message, len(members))
	for i, m := range members {
		models[i] = m.Model
		messages[i] = buildMessages(content, m.Persona)
	}
	return models, messages
}

// memberPersonas extracts the persona list when every member carries one.
// Councils are either fully persona-wrapped or not at all; a mixed panel
// yields no persona context.
func memberPersonas(members []Member) []Persona {
	personas := make([]Persona, 0, len(members))
	for _, m := range members {
		if m.Persona == nil {
			return nil
		}
		personas = append(personas, *m.Persona)
	}
	return personas
}
