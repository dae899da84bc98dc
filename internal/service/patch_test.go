package service

import (
	"testing"
	"time"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMomPatch_Diff(t *testing.T) {
	number := "MOM-1"
	mom := &model.Mom{
		MomNumber:   &number,
		Title:       "Old Title",
		Subject:     "Old Subject",
		MeetingDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	newTitle := "New Title"
	sameSubject := "Old Subject"
	changes, fields := MomPatch{Title: &newTitle, Subject: &sameSubject}.Diff(mom)

	assert.Len(t, changes, 1)
	assert.Equal(t, "title", changes[0].Field)
	assert.Equal(t, "Old Title", changes[0].Old)
	assert.Equal(t, "New Title", changes[0].New)

	assert.Len(t, fields, 1)
	assert.Equal(t, "New Title", fields["title"])
}

func TestMomPatch_DiffClearsNullableFields(t *testing.T) {
	number := "MOM-1"
	locID := "loc-1"
	mom := &model.Mom{MomNumber: &number, LocationID: &locID, Title: "T"}

	empty := ""
	changes, fields := MomPatch{MomNumber: &empty, LocationID: &empty}.Diff(mom)

	assert.Len(t, changes, 2)
	assert.Contains(t, fields, "mom_number")
	assert.Nil(t, fields["mom_number"])
	assert.Contains(t, fields, "location_id")
	assert.Nil(t, fields["location_id"])
}

func TestMomPatch_DiffAbsentFieldsUntouched(t *testing.T) {
	mom := &model.Mom{Title: "Keep", Subject: "Keep Too"}

	changes, fields := MomPatch{}.Diff(mom)
	assert.Empty(t, changes)
	assert.Empty(t, fields)
}

func TestActionPatch_DiffReminderResetsNotified(t *testing.T) {
	old := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	action := &model.MomAction{Description: "task", ReminderDate: &old, ReminderNotified: true}

	newDate := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)
	changes, fields := ActionPatch{ReminderDate: &newDate}.Diff(action)

	assert.Len(t, changes, 1)
	assert.Equal(t, "reminder_date", changes[0].Field)
	assert.Equal(t, newDate, fields["reminder_date"])
	assert.Equal(t, false, fields["reminder_notified"])

	// an unchanged reminder date leaves the flag alone
	changes, fields = ActionPatch{ReminderDate: &old}.Diff(action)
	assert.Empty(t, changes)
	assert.NotContains(t, fields, "reminder_notified")
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name  string
		state string
		event StatusEvent
		next  string
		taken bool
	}{
		{"manual close", model.MomStatusOpen, EventCloseRequested, model.MomStatusClosed, true},
		{"manual reopen", model.MomStatusClosed, EventReopenRequested, model.MomStatusOpen, true},
		{"auto close", model.MomStatusOpen, EventAllActionsResolved, model.MomStatusClosed, true},
		{"auto reopen", model.MomStatusClosed, EventResolvedActionReopened, model.MomStatusOpen, true},
		{"close when closed", model.MomStatusClosed, EventCloseRequested, "", false},
		{"reopen when open", model.MomStatusOpen, EventReopenRequested, "", false},
		{"auto close when closed", model.MomStatusClosed, EventAllActionsResolved, "", false},
		{"auto reopen when open", model.MomStatusOpen, EventResolvedActionReopened, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transition, ok := nextStatus(tt.state, tt.event)
			assert.Equal(t, tt.taken, ok)
			if tt.taken {
				assert.Equal(t, tt.next, transition.Next)
				assert.Equal(t, model.HistoryStatusChange, transition.HistoryAction)
			}
		})
	}
}
