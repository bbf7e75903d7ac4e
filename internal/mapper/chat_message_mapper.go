package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"llm-council-be/internal/entity"
	"llm-council-be/internal/model"
	"llm-council-be/pkg/council"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var deletedAt *time.Time
	if msg.DeletedAt.Valid {
		t := msg.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	e := &entity.ChatMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      msg.DeletedAt.Valid,
	}

	// Stage payloads are written by this process; a decode failure leaves the
	// field empty rather than failing the whole read.
	if len(msg.Stage1) > 0 {
		_ = json.Unmarshal(msg.Stage1, &e.Stage1)
	}
	if len(msg.Stage2) > 0 {
		_ = json.Unmarshal(msg.Stage2, &e.Stage2)
	}
	if len(msg.Stage3) > 0 {
		var s3 council.Stage3Result
		if err := json.Unmarshal(msg.Stage3, &s3); err == nil {
			e.Stage3 = &s3
		}
	}
	if len(msg.Metadata) > 0 {
		var meta council.Metadata
		if err := json.Unmarshal(msg.Metadata, &meta); err == nil {
			e.Metadata = &meta
		}
	}

	return e
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if msg.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *msg.DeletedAt, Valid: true}
	} else if msg.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if msg.UpdatedAt != nil {
		updatedAt = *msg.UpdatedAt
	}

	out := &model.ChatMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}

	out.Stage1 = marshalJSON(msg.Stage1, len(msg.Stage1) > 0)
	out.Stage2 = marshalJSON(msg.Stage2, len(msg.Stage2) > 0)
	out.Stage3 = marshalJSON(msg.Stage3, msg.Stage3 != nil)
	out.Metadata = marshalJSON(msg.Metadata, msg.Metadata != nil)

	return out
}

func marshalJSON(v interface{}, present bool) datatypes.JSON {
	if !present {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
