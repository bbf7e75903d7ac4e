package entity

import (
	"time"

	"github.com/google/uuid"
)

// Persona is a stored council seat: a model plus the system prompt shaping it.
type Persona struct {
	Id          uuid.UUID
	Name        string
	Prompt      string
	Description string
	Model       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
