package council

import (
	"context"
	"fmt"
	"strings"

	"llm-council-be/pkg/llm"
)

const personaDescriptionLimit = 150

// Synthesize runs Stage 3: the chairman receives the original question, every
// Stage 1 answer, every Stage 2 ranking and the persona context, and produces
// the final answer. The chairman itself carries no persona. On chairman
// failure the result is a fixed error response, never an absent value; the
// run always terminates with a populated final-answer slot.
func (e *Engine) Synthesize(ctx context.Context, userQuery string, stage1 []Stage1Result, stage2 []Stage2Result, members []Member, subject string) Stage3Result {
	prompt := buildChairmanPrompt(userQuery, stage1, stage2, memberPersonas(members), subject)

	messages := []llm.Message{{Role: llm.RoleUser, Content: prompt}}
	resp, err := e.querySvc.Query(ctx, e.chairman, messages, e.timeout)
	if err != nil || resp == nil || resp.Content == "" {
		e.log.Error("council", "chairman synthesis failed", map[string]interface{}{
			"chairman": e.chairman,
			"error":    errText(err),
		})
		return Stage3Result{Model: e.chairman, Response: synthesisFailedMessage}
	}

	return Stage3Result{Model: e.chairman, Response: resp.Content}
}

func buildChairmanPrompt(userQuery string, stage1 []Stage1Result, stage2 []Stage2Result, personas []Persona, subject string) string {
	var stage1Text strings.Builder
	for i, r := range stage1 {
		if i > 0 {
			stage1Text.WriteString("\n\n")
		}
		fmt.Fprintf(&stage1Text, "Model: %s\nResponse: %s", r.Model, r.Response)
	}

	var stage2Text strings.Builder
	for i, r := range stage2 {
		if i > 0 {
			stage2Text.WriteString("\n\n")
		}
		fmt.Fprintf(&stage2Text, "Model: %s\nRanking: %s", r.Model, r.Ranking)
	}

	var b strings.Builder
	b.WriteString("You are the Chairman of an LLM Council. Multiple AI models have provided responses to a user's question, and then ranked each other's responses.\n")

	if s := strings.TrimSpace(subject); s != "" {
		fmt.Fprintf(&b, "\nDISCUSSION SUBJECT: %s\n(This is what this conversation is about. Use it to frame your synthesis.)\n", s)
	}

	fmt.Fprintf(&b, "\nORIGINAL QUESTION: %s\n", userQuery)

	if personaContext := buildPersonaContext(stage1, personas); personaContext != "" {
		fmt.Fprintf(&b, "\nCOUNCIL MEMBER PERSONAS (each model responded with this perspective; use this to understand their viewpoints):\n%s\n\n", personaContext)
	}

	fmt.Fprintf(&b, "STAGE 1 - Individual Responses:\n%s\n\n", stage1Text.String())
	fmt.Fprintf(&b, "STAGE 2 - Peer Rankings:\n%s\n\n", stage2Text.String())

	b.WriteString(`Your task as Chairman is to synthesize all of this information into a single, comprehensive, accurate answer to the user's original question. Consider:
- The individual responses and their insights
- The perspectives each persona brought to their response
- The peer rankings and what they reveal about response quality
- Any patterns of agreement or disagreement

Provide a clear, well-reasoned final answer that represents the council's collective wisdom:`)

	return b.String()
}

// buildPersonaContext renders one description line per responding model. It
// only fires when the persona list matches the Stage 1 results exactly;
// anything else means the pairing is ambiguous and no context is emitted.
func buildPersonaContext(stage1 []Stage1Result, personas []Persona) string {
	if len(personas) == 0 || len(personas) != len(stage1) {
		return ""
	}

	lines := make([]string, 0, len(stage1))
	for i, result := range stage1 {
		p := personas[i]
		desc := p.Description
		if desc == "" {
			desc = summarizePrompt(p.Prompt)
		}
		lines = append(lines, fmt.Sprintf("- %s (persona: %s): %s", result.Model, p.Name, desc))
	}

	return strings.Join(lines, "\n")
}

// summarizePrompt falls back to the first line of the persona prompt,
// truncated to a readable length.
func summarizePrompt(prompt string) string {
	firstLine, _, _ := strings.Cut(prompt, "\n")
	firstLine = strings.TrimSpace(firstLine)
	if runes := []rune(firstLine); len(runes) > personaDescriptionLimit {
		return string(runes[:personaDescriptionLimit]) + "..."
	}
	return firstLine
}

func errText(err error) string {
	if err == nil {
		return "empty response"
	}
	return err.Error()
}
