package council

import (
	"context"
	"fmt"
	"strings"
)

const rankingPromptTemplate = `You are evaluating different responses to the following question:

Question: %s

Here are the responses from different models (anonymized):

%s

Your task:
1. First, evaluate each response individually. For each response, explain what it does well and what it does poorly.
2. Then, at the very end of your response, provide a final ranking.

IMPORTANT: Your final ranking MUST be formatted EXACTLY as follows:
- Start with the line "FINAL RANKING:" (all caps, with colon)
- Then list the responses from best to worst as a numbered list
- Each line should be: number, period, space, then ONLY the response label (e.g., "1. Response A")
- Do not add any other text or explanations in the ranking section

Example of the correct format for your ENTIRE response:

Response A provides good detail on X but misses Y...
Response B is accurate but lacks depth on Z...
Response C offers the most comprehensive answer...

FINAL RANKING:
1. Response C
2. Response A
3. Response B

Now provide your evaluation and ranking:`

// CollectRankings runs Stage 2: anonymize the Stage 1 answers under stable
// single-letter labels, then ask every member to rank them, including members
// whose own answer did not survive Stage 1. Returns the rankings plus
// the label→model map, the only channel that de-anonymizes them.
func (e *Engine) CollectRankings(ctx context.Context, userQuery string, stage1 []Stage1Result, members []Member) ([]Stage2Result, map[string]string) {
	labels := assignLabels(len(stage1))

	labelToModel := make(map[string]string, len(stage1))
	var responsesText strings.Builder
	for i, result := range stage1 {
		labelToModel[labels[i]] = result.Model
		if i > 0 {
			responsesText.WriteString("\n\n")
		}
		fmt.Fprintf(&responsesText, "%s:\n%s", labels[i], result.Response)
	}

	prompt := fmt.Sprintf(rankingPromptTemplate, userQuery, responsesText.String())

	models, messages := memberMessages(prompt, members)
	responses := e.querySvc.QueryMany(ctx, models, messages, e.timeout)

	results := make([]Stage2Result, 0, len(members))
	for _, r := range responses {
		if r.Err != nil || r.Response == nil || r.Response.Content == "" {
			continue
		}
		results = append(results, Stage2Result{
			Model:         r.Model,
			Ranking:       r.Response.Content,
			ParsedRanking: ParseRanking(r.Response.Content),
		})
	}

	e.log.Info("council", "stage 2 complete", map[string]interface{}{
		"labels":   len(labels),
		"rankings": len(results),
	})

	return results, labelToModel
}

// assignLabels produces "Response A", "Response B", … in collection order.
// Labels are scoped to a single run.
func assignLabels(n int) []string {
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = fmt.Sprintf("Response %c", 'A'+i)
	}
	return labels
}
