package llm

import (
	"context"
	"time"
)

// Message roles in the provider-agnostic chat format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string
	Content string
}

// Response is the result of a successful model query. ReasoningDetails is
// only populated by providers that expose it; empty means "not provided".
type Response struct {
	Content          string `json:"content"`
	ReasoningDetails string `json:"reasoning_details,omitempty"`
}

// Provider defines the contract for any LLM backend. The model identifier
// arrives with its provider prefix already stripped, except for gateway
// providers that route on the full identifier.
type Provider interface {
	Query(ctx context.Context, model string, messages []Message) (*Response, error)

	// ListModels returns the model identifiers the provider currently serves.
	ListModels(ctx context.Context) ([]string, error)
}

// QueryResult pairs a model identifier with the outcome of its query.
// Exactly one of Response / Err is set.
type QueryResult struct {
	Model    string
	Response *Response
	Err      error
}

// QueryService is the capability the council engine consumes: query one model,
// or fan out to many concurrently. QueryMany must preserve input order in its
// result slice regardless of completion order.
type QueryService interface {
	Query(ctx context.Context, model string, messages []Message, timeout time.Duration) (*Response, error)
	QueryMany(ctx context.Context, models []string, messages [][]Message, timeout time.Duration) []QueryResult
}
