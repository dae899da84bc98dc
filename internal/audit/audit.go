// Package audit implements the global append-only compliance trail. Writes
// are fire-and-forget: a failed insert is logged and never propagated to the
// caller.
package audit

import (
	"context"
	"encoding/json"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Audit action codes.
const (
	ActionLocationCreated = "mom_location_created"
	ActionLocationUpdated = "mom_location_updated"
	ActionLocationDeleted = "mom_location_deleted"
	ActionMomCreated      = "mom_created"
	ActionMomUpdated      = "mom_updated"
	ActionMomDeleted      = "mom_deleted"
	ActionMomClosed       = "mom_closed"
	ActionMomReopened     = "mom_reopened"
	ActionFileArchived    = "mom_file_archived"
	ActionArchivePurged   = "mom_archive_purged"
)

type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log appends an audit entry. Details is marshaled to JSON; a nil details map
// is stored empty.
func (l *Logger) Log(ctx context.Context, action, actorID, actorName, entityType, entityID string, details map[string]interface{}) {
	entry := &model.AuditLog{
		ID:         uuid.New().String(),
		Action:     action,
		ActorID:    actorID,
		ActorName:  actorName,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logrus.Errorf("audit: failed to marshal details for %s: %v", action, err)
		} else {
			entry.Details = string(data)
		}
	}

	if err := l.db.WithContext(ctx).Create(entry).Error; err != nil {
		logrus.Errorf("audit: failed to record %s on %s/%s: %v", action, entityType, entityID, err)
	}
}
