package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRScan is the append-only record of one validation attempt that resolved
// a member. Rows are created once per successful token resolution and never
// updated or deleted by this service; scan history is intentionally
// cumulative, not deduplicated.
type QRScan struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	MemberID  string    `gorm:"column:member_id;type:varchar(255);not null;index:idx_qr_scans_member_id" json:"memberId"`
	ScannedAt time.Time `gorm:"column:scanned_at;not null;index:idx_qr_scans_scanned_at" json:"scannedAt"`

	// ImmutableModel provides CreatedAt
	ImmutableModel
}

// TableName sets the table name for the QRScan model
func (QRScan) TableName() string {
	return "qr_scans"
}

// BeforeCreate hook to set default values
func (s *QRScan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.ScannedAt.IsZero() {
		s.ScannedAt = time.Now().UTC()
	}
	return s.ImmutableModel.BeforeCreate(tx)
}
