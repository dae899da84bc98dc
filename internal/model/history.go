package model

import "time"

// History ledger actions.
const (
	HistoryCreated        = "created"
	HistoryFieldEdit      = "field_edit"
	HistoryStatusChange   = "status_change"
	HistoryFileUploaded   = "file_uploaded"
	HistoryActionCreated  = "action_created"
	HistoryActionEdited   = "action_edited"
	HistoryActionResolved = "action_resolved"
	HistoryActionReopened = "action_reopened"
	HistoryDraftAdded     = "draft_added"
	HistoryDraftDeleted   = "draft_deleted"
	HistoryTopicLinked    = "topic_linked"
	HistoryTopicUnlinked  = "topic_unlinked"
	HistoryRecordLinked   = "record_linked"
	HistoryRecordUnlinked = "record_unlinked"
	HistoryLetterLinked   = "letter_linked"
	HistoryLetterUnlinked = "letter_unlinked"
)

// MomHistory is an append-only change event for a Mom. Rows are never mutated
// or deleted while the parent lives.
type MomHistory struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	MomID     string    `gorm:"uuid;not null;index" json:"mom_id"`
	Action    string    `gorm:"not null" json:"action"`
	FieldName string    `json:"field_name,omitempty"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	Details   string    `json:"details,omitempty"`
	Actor     string    `gorm:"not null" json:"actor"`
	ActorName string    `gorm:"-" json:"actor_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (MomHistory) TableName() string {
	return "mom_history"
}
