package model

import "time"

const (
	ActionStatusOpen     = "open"
	ActionStatusResolved = "resolved"
)

// MomAction is a follow-up task attached to a Mom. The resolution fields are
// populated iff Status is resolved; reopening clears them with the status flip.
type MomAction struct {
	ID               string     `gorm:"primaryKey;uuid;not null" json:"id"`
	MomID            string     `gorm:"uuid;not null;index" json:"mom_id"`
	Description      string     `gorm:"not null" json:"description"`
	ResponsibleParty string     `json:"responsible_party,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ReminderDate     *time.Time `json:"reminder_date,omitempty"`
	ReminderNotified bool       `gorm:"not null;default:false" json:"reminder_notified"`
	Status           string     `gorm:"not null;default:open" json:"status"`

	ResolutionNote     string     `json:"resolution_note,omitempty"`
	ResolutionFilePath string     `json:"resolution_file_path,omitempty"`
	ResolutionFileName string     `json:"resolution_file_name,omitempty"`
	ResolutionFileSize int64      `json:"resolution_file_size,omitempty"`
	ResolvedBy         *string    `json:"resolved_by,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`

	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MomAction) TableName() string {
	return "mom_actions"
}
