package model

import (
	"time"

	"gorm.io/gorm"
)

// MomLocation is reference data for meeting locations. Soft-deleted; a
// location referenced by any non-deleted Mom cannot be deleted.
type MomLocation struct {
	ID          string         `gorm:"primaryKey;uuid;not null" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedBy   string         `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MomLocation) TableName() string {
	return "mom_locations"
}
