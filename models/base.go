package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel contains the audit timestamps shared by mutable models.
// Both fields are set by GORM hooks; callers never write them.
type BaseModel struct {
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// BeforeCreate GORM hook for BaseModel
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// BeforeUpdate GORM hook for BaseModel
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// ImmutableModel contains the audit timestamp for append-only models.
// Note: UpdatedAt is intentionally omitted as scan events are immutable
// (created only, never updated or deleted).
type ImmutableModel struct {
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate GORM hook for ImmutableModel
func (m *ImmutableModel) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now().UTC()
	return nil
}
