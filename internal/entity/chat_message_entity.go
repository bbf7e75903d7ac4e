package entity

import (
	"time"

	"github.com/google/uuid"

	"llm-council-be/pkg/council"
)

// ChatMessage is one turn of a conversation. User turns carry only Content;
// assistant turns additionally carry the full deliberation payload.
type ChatMessage struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	Stage1         []council.Stage1Result
	Stage2         []council.Stage2Result
	Stage3         *council.Stage3Result
	Metadata       *council.Metadata
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)
