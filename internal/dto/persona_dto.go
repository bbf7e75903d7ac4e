package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePersonaRequest struct {
	Name        string `json:"name" validate:"required"`
	Prompt      string `json:"prompt" validate:"required"`
	Description string `json:"description,omitempty"`
	Model       string `json:"model" validate:"required"`
}

// UpdatePersonaRequest is a partial update: absent fields keep their stored
// values.
type UpdatePersonaRequest struct {
	Name        *string `json:"name,omitempty"`
	Prompt      *string `json:"prompt,omitempty"`
	Description *string `json:"description,omitempty"`
	Model       *string `json:"model,omitempty"`
}

type PersonaResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Prompt      string     `json:"prompt"`
	Description string     `json:"description,omitempty"`
	Model       string     `json:"model"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
