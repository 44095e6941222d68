package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel gives a table a string uuid primary key
type UUIDModel struct {
	ID string `json:"id" gorm:"type:varchar(36);primaryKey"`
}

// BeforeCreate assigns a new uuid unless the caller already set one
func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
