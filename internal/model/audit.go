package model

import "time"

// AuditLog is the global append-only compliance trail, distinct from the
// per-Mom history ledger.
type AuditLog struct {
	ID         string    `gorm:"primaryKey;uuid;not null" json:"id"`
	Action     string    `gorm:"not null;index" json:"action"`
	ActorID    string    `gorm:"not null" json:"actor_id"`
	ActorName  string    `json:"actor_name,omitempty"`
	EntityType string    `gorm:"not null;index" json:"entity_type"`
	EntityID   string    `gorm:"not null" json:"entity_id"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
