package model

import (
	"time"

	"gorm.io/gorm"
)

// MomDraft is a versioned revision of a Mom's working document. Versions are
// monotonic per parent and never reused, soft-deleted rows included.
type MomDraft struct {
	ID          string `gorm:"primaryKey;uuid;not null" json:"id"`
	MomID       string `gorm:"uuid;not null;index" json:"mom_id"`
	Version     int    `gorm:"not null" json:"version"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	FilePath     string `json:"file_path,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	FileChecksum string `json:"file_checksum,omitempty"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MomDraft) TableName() string {
	return "mom_drafts"
}
