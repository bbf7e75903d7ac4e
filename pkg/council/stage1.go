package council

import (
	"context"
)

// CollectResponses runs Stage 1: fan the user query out to every member
// concurrently and gather the answers. Output order matches member order, not
// completion order; Stage 2 label assignment depends on it. Members that
// fail or answer with empty content are dropped without a placeholder.
func (e *Engine) CollectResponses(ctx context.Context, userQuery string, members []Member) []Stage1Result {
	if len(members) == 0 {
		return []Stage1Result{}
	}

	models, messages := memberMessages(userQuery, members)
	responses := e.querySvc.QueryMany(ctx, models, messages, e.timeout)

	results := make([]Stage1Result, 0, len(members))
	for _, r := range responses {
		if r.Err != nil || r.Response == nil || r.Response.Content == "" {
			continue
		}
		results = append(results, Stage1Result{
			Model:    r.Model,
			Response: r.Response.Content,
		})
	}

	e.log.Info("council", "stage 1 complete", map[string]interface{}{
		"members":   len(members),
		"responses": len(results),
	})

	return results
}
