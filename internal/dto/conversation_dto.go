package dto

import (
	"time"

	"github.com/google/uuid"

	"llm-council-be/pkg/council"
)

type CreateConversationRequest struct {
	Title string `json:"title,omitempty"`
}

type ConversationResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ConversationDetailResponse struct {
	Id        uuid.UUID             `json:"id"`
	Title     string                `json:"title"`
	CreatedAt time.Time             `json:"created_at"`
	Messages  []ChatMessageResponse `json:"messages"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Stage1    []council.Stage1Result `json:"stage1,omitempty"`
	Stage2    []council.Stage2Result `json:"stage2,omitempty"`
	Stage3    *council.Stage3Result  `json:"stage3,omitempty"`
	Metadata  *council.Metadata      `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type SendMessageRequest struct {
	Content    string      `json:"content" validate:"required"`
	PersonaIds []uuid.UUID `json:"persona_ids,omitempty"`
}

// PublishCouncilTurnMessage is the payload of the COUNCIL_TURN_COMPLETED
// event. The consumer uses it to title first-turn conversations off the
// request path.
type PublishCouncilTurnMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	FirstMessage   string    `json:"first_message"`
}

type SendMessageResponse struct {
	ConversationId uuid.UUID              `json:"conversation_id"`
	Title          string                 `json:"title"`
	Stage1         []council.Stage1Result `json:"stage1"`
	Stage2         []council.Stage2Result `json:"stage2"`
	Stage3         council.Stage3Result   `json:"stage3"`
	Metadata       council.Metadata       `json:"metadata"`
}
