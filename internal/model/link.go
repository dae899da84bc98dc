package model

import "time"

// Link rows tie a Mom to topics, records and letters maintained by sibling
// modules. The Mom owns the rows but never the referents; read paths must
// tolerate a referent that was deleted after linking.

type MomTopicLink struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	MomID     string    `gorm:"uuid;not null;uniqueIndex:idx_mom_topic" json:"mom_id"`
	TopicID   string    `gorm:"uuid;not null;uniqueIndex:idx_mom_topic" json:"topic_id"`
	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (MomTopicLink) TableName() string {
	return "mom_topic_links"
}

type MomRecordLink struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	MomID     string    `gorm:"uuid;not null;uniqueIndex:idx_mom_record" json:"mom_id"`
	RecordID  string    `gorm:"uuid;not null;uniqueIndex:idx_mom_record" json:"record_id"`
	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (MomRecordLink) TableName() string {
	return "mom_record_links"
}

type MomLetterLink struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	MomID     string    `gorm:"uuid;not null;uniqueIndex:idx_mom_letter" json:"mom_id"`
	LetterID  string    `gorm:"uuid;not null;uniqueIndex:idx_mom_letter" json:"letter_id"`
	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (MomLetterLink) TableName() string {
	return "mom_letter_links"
}

// LinkedEntity is the read projection of a link row joined with its referent.
// DeletedReason is set (e.g. "topic_deleted") instead of dropping the row when
// the referent no longer resolves.
type LinkedEntity struct {
	LinkID        string    `json:"link_id"`
	TargetID      string    `json:"target_id"`
	Title         string    `json:"title,omitempty"`
	DeletedReason string    `json:"deleted_reason,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
