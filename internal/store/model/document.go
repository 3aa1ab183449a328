package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document holds attachment metadata only. The blob itself is owned by the
// external document store.
type Document struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	ReviewID   uuid.UUID `gorm:"not null;index:documents_review_idx;type:VARCHAR(255)"`
	Name       string    `gorm:"not null;type:VARCHAR(255)"`
	Size       int64     `gorm:"not null;default:0"`
	MimeType   string    `gorm:"not null;type:VARCHAR(255)"`
	UploadedBy string    `gorm:"type:VARCHAR(255)"`
	UploadedAt time.Time `gorm:"not null"`
	Reviewed   bool      `gorm:"not null;default:false"`
}

type DocumentList []Document

func (d Document) String() string {
	val, _ := json.Marshal(d)
	return string(val)
}
