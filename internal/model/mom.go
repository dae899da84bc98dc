package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	MomStatusOpen   = "open"
	MomStatusClosed = "closed"
)

// SystemActor is recorded on history rows written by automatic transitions.
const SystemActor = "system"

// Mom is the aggregate root of a meeting-minutes record. StoragePath is
// derived once at creation and never recomputed, even when the title changes.
type Mom struct {
	ID          string    `gorm:"primaryKey;uuid;not null" json:"id"`
	MomNumber   *string   `gorm:"column:mom_number;index" json:"mom_number,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Subject     string    `json:"subject,omitempty"`
	MeetingDate time.Time `gorm:"not null" json:"meeting_date"`
	LocationID  *string   `gorm:"uuid" json:"location_id,omitempty"`
	Status      string    `gorm:"not null;default:open" json:"status"`
	StoragePath string    `gorm:"not null" json:"storage_path"`

	FileName     string `json:"file_name,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	FileChecksum string `json:"file_checksum,omitempty"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Mom) TableName() string {
	return "moms"
}

// MomCounters are the derived statistics attached to a Mom on read. They are
// computed from the live rows, never stored.
type MomCounters struct {
	TopicCount      int64 `json:"topic_count"`
	RecordCount     int64 `json:"record_count"`
	TotalActions    int64 `json:"total_actions"`
	ResolvedActions int64 `json:"resolved_actions"`
	OverdueActions  int64 `json:"overdue_actions"`
}

// MomWithCounters is the read projection returned by the get operations.
type MomWithCounters struct {
	Mom
	Counters MomCounters `json:"counters" gorm:"-"`
}

// MomStats are the global counters across all non-deleted Moms.
type MomStats struct {
	TotalMoms      int64 `json:"total_moms"`
	OpenMoms       int64 `json:"open_moms"`
	ClosedMoms     int64 `json:"closed_moms"`
	OverdueActions int64 `json:"overdue_actions"`
}
