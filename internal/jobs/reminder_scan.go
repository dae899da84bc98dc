package jobs

import (
	"context"
	"time"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/service"
	"github.com/sirupsen/logrus"
)

// Notifier presents a due reminder to someone. Delivery must succeed before
// the scan acknowledges the action; otherwise it is retried next tick.
type Notifier interface {
	Notify(ctx context.Context, action *model.MomAction) error
}

// LogNotifier is the default sink: it writes the reminder to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, action *model.MomAction) error {
	logrus.WithFields(logrus.Fields{
		"action_id": action.ID,
		"mom_id":    action.MomID,
	}).Infof("reminder due: %s", action.Description)
	return nil
}

// ReminderScanTask polls for open actions whose reminder date has passed and
// delivers each exactly once, acknowledging through the service so the
// reminder_notified flag is the only dedupe state.
type ReminderScanTask struct {
	moms     *service.MomService
	notifier Notifier
	cron     string
}

func NewReminderScanTask(schedule string, moms *service.MomService, notifier Notifier) *ReminderScanTask {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ReminderScanTask{
		moms:     moms,
		notifier: notifier,
		cron:     schedule,
	}
}

func (r *ReminderScanTask) Schedule() string {
	return r.cron
}

func (r *ReminderScanTask) Run() {
	ctx := context.Background()

	due, err := r.moms.ListDueReminders(ctx, time.Now())
	if err != nil {
		logrus.Errorf("reminder scan: listing due reminders: %v", err)
		return
	}

	for _, action := range due {
		if err := r.notifier.Notify(ctx, action); err != nil {
			logrus.Errorf("reminder scan: notify failed for action %s: %v", action.ID, err)
			continue
		}
		if err := r.moms.AcknowledgeReminder(ctx, action.ID); err != nil {
			logrus.Errorf("reminder scan: acknowledge failed for action %s: %v", action.ID, err)
		}
	}
}
