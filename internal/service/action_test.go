package service

import (
	"context"
	"testing"
	"time"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/stretchr/testify/assert"
)

func createTestMom(t *testing.T, moms *MomService, title string) *model.Mom {
	t.Helper()
	mom, err := moms.CreateMom(context.TODO(), CreateMomInput{
		Title:       title,
		MeetingDate: time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
		TopicIDs:    []string{"T1"},
	}, "user-1")
	assert.NoError(t, err)
	return mom
}

func TestMomService_ResolveLastActionClosesMom(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Budget Review")

	action, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "Send report"}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, model.ActionStatusOpen, action.Status)

	got, err := moms.GetMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.MomStatusOpen, got.Status)

	resolved, err := moms.ResolveAction(ctx, action.ID, "Sent", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, model.ActionStatusResolved, resolved.Status)
	assert.Equal(t, "Sent", resolved.ResolutionNote)
	assert.NotNil(t, resolved.ResolvedAt)

	got, err = moms.GetMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.MomStatusClosed, got.Status)

	entries, err := moms.ListHistory(ctx, mom.ID)
	assert.NoError(t, err)
	// created, action_created, action_resolved, status_change
	assert.Len(t, entries, 4)
	assert.Equal(t, model.HistoryActionResolved, entries[2].Action)
	assert.Equal(t, model.HistoryStatusChange, entries[3].Action)
	assert.Equal(t, model.SystemActor, entries[3].Actor)
	assert.Equal(t, "System", entries[3].ActorName)
}

func TestMomService_ResolveWithOtherOpenActionsKeepsMomOpen(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Two Tasks")

	first, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "first"}, "user-1")
	assert.NoError(t, err)
	_, err = moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "second"}, "user-1")
	assert.NoError(t, err)

	_, err = moms.ResolveAction(ctx, first.ID, "done", "user-1")
	assert.NoError(t, err)

	got, err := moms.GetMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.MomStatusOpen, got.Status)
}

func TestMomService_ReopenActionReopensClosedMom(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Reopen Cycle")

	action, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "task"}, "user-1")
	assert.NoError(t, err)
	_, err = moms.ResolveAction(ctx, action.ID, "done", "user-1")
	assert.NoError(t, err)

	got, err := moms.GetMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.MomStatusClosed, got.Status)

	reopened, err := moms.ReopenAction(ctx, action.ID, "user-2")
	assert.NoError(t, err)
	assert.Equal(t, model.ActionStatusOpen, reopened.Status)
	assert.Empty(t, reopened.ResolutionNote)
	assert.Nil(t, reopened.ResolvedBy)
	assert.Nil(t, reopened.ResolvedAt)

	got, err = moms.GetMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.MomStatusOpen, got.Status)

	entries, err := moms.ListHistory(ctx, mom.ID)
	assert.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, model.HistoryStatusChange, last.Action)
	assert.Equal(t, model.SystemActor, last.Actor)
}

func TestMomService_ResolveActionConflicts(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Conflicts")
	action, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "task"}, "user-1")
	assert.NoError(t, err)

	var validation *ValidationError
	_, err = moms.ResolveAction(ctx, action.ID, "  ", "user-1")
	assert.ErrorAs(t, err, &validation)

	var conflict *ConflictError
	_, err = moms.ReopenAction(ctx, action.ID, "user-1")
	assert.ErrorAs(t, err, &conflict)

	_, err = moms.ResolveAction(ctx, action.ID, "done", "user-1")
	assert.NoError(t, err)
	_, err = moms.ResolveAction(ctx, action.ID, "again", "user-1")
	assert.ErrorAs(t, err, &conflict)
}

func TestMomService_UpdateActionReminderResetsNotified(t *testing.T) {
	moms, _, st := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Reminders")
	past := time.Now().Add(-time.Hour)
	action, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "remind me", ReminderDate: &past}, "user-1")
	assert.NoError(t, err)

	err = moms.AcknowledgeReminder(ctx, action.ID)
	assert.NoError(t, err)
	got, err := st.GetAction(ctx, action.ID)
	assert.NoError(t, err)
	assert.True(t, got.ReminderNotified)

	newDate := time.Now().Add(-time.Minute)
	updated, err := moms.UpdateAction(ctx, action.ID, ActionPatch{ReminderDate: &newDate}, "user-1")
	assert.NoError(t, err)
	assert.False(t, updated.ReminderNotified)
}

func TestMomService_ListActionsOrdering(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Ordering")

	later := time.Now().Add(72 * time.Hour)
	sooner := time.Now().Add(24 * time.Hour)

	noDeadline, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "no deadline"}, "user-1")
	assert.NoError(t, err)
	lateAction, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "late", Deadline: &later}, "user-1")
	assert.NoError(t, err)
	soonAction, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "soon", Deadline: &sooner}, "user-1")
	assert.NoError(t, err)
	doneAction, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "done"}, "user-1")
	assert.NoError(t, err)
	_, err = moms.ResolveAction(ctx, doneAction.ID, "finished", "user-1")
	assert.NoError(t, err)

	actions, err := moms.ListActionsByMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, actions, 4)
	assert.Equal(t, soonAction.ID, actions[0].ID)
	assert.Equal(t, lateAction.ID, actions[1].ID)
	assert.Equal(t, noDeadline.ID, actions[2].ID)
	assert.Equal(t, doneAction.ID, actions[3].ID)
}

func TestMomService_DueRemindersAndAcknowledge(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Due")

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	due, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "due now", ReminderDate: &past}, "user-1")
	assert.NoError(t, err)
	_, err = moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "not yet", ReminderDate: &future}, "user-1")
	assert.NoError(t, err)

	actions, err := moms.ListDueReminders(ctx, time.Now())
	assert.NoError(t, err)
	assert.Len(t, actions, 1)
	assert.Equal(t, due.ID, actions[0].ID)

	err = moms.AcknowledgeReminder(ctx, due.ID)
	assert.NoError(t, err)

	actions, err = moms.ListDueReminders(ctx, time.Now())
	assert.NoError(t, err)
	assert.Len(t, actions, 0)
}

func TestMomService_ListDeadlinesSkipsDeletedParents(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	keep := createTestMom(t, moms, "Keep")
	drop := createTestMom(t, moms, "Drop")

	deadline := time.Now().Add(24 * time.Hour)
	kept, err := moms.CreateAction(ctx, keep.ID, CreateActionInput{Description: "kept", Deadline: &deadline}, "user-1")
	assert.NoError(t, err)
	_, err = moms.CreateAction(ctx, drop.ID, CreateActionInput{Description: "orphaned", Deadline: &deadline}, "user-1")
	assert.NoError(t, err)

	err = moms.DeleteMom(ctx, drop.ID, "user-1")
	assert.NoError(t, err)

	actions, err := moms.ListDeadlines(ctx)
	assert.NoError(t, err)
	assert.Len(t, actions, 1)
	assert.Equal(t, kept.ID, actions[0].ID)
}
