package service

import (
	"context"
	"time"

	"github.com/archivedesk/minutes/internal/model"
)

// The reminder surface is read-only except for the explicit acknowledgment.
// The reminder_notified column is the single dedupe source of truth: a poller
// that presented a reminder must acknowledge it or it will be delivered again.

// ListDueReminders returns open, un-notified actions whose reminder date has
// passed and whose parent Mom is not deleted.
func (s *MomService) ListDueReminders(ctx context.Context, now time.Time) ([]*model.MomAction, error) {
	actions, err := s.store.ListActionsWithDueReminders(ctx, now)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return actions, nil
}

// ListDeadlines returns all open actions carrying a deadline, parent not
// deleted, ascending by deadline.
func (s *MomService) ListDeadlines(ctx context.Context) ([]*model.MomAction, error) {
	actions, err := s.store.ListActionsWithDeadlines(ctx)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return actions, nil
}

// AcknowledgeReminder marks the action's reminder as delivered.
func (s *MomService) AcknowledgeReminder(ctx context.Context, actionID string) error {
	if _, err := s.getAction(ctx, actionID); err != nil {
		return err
	}
	if err := s.store.MarkReminderNotified(ctx, actionID); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}
