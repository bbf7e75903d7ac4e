package model

import (
	"time"

	"github.com/google/uuid"
)

type Persona struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Prompt      string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Model       string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Persona) TableName() string {
	return "personas"
}
