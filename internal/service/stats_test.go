package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_GetMomStats(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	first, err := moms.CreateMom(ctx, CreateMomInput{
		Title:       "Open One",
		MeetingDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}, "user-1")
	assert.NoError(t, err)

	second, err := moms.CreateMom(ctx, CreateMomInput{
		Title:       "Closed One",
		MeetingDate: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
	}, "user-1")
	assert.NoError(t, err)
	_, err = moms.CloseMom(ctx, second.ID, "user-1")
	assert.NoError(t, err)

	past := time.Now().Add(-24 * time.Hour)
	_, err = moms.CreateAction(ctx, first.ID, CreateActionInput{Description: "overdue", Deadline: &past}, "user-1")
	assert.NoError(t, err)

	stats, err := moms.stats.GetMomStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMoms)
	assert.Equal(t, int64(1), stats.OpenMoms)
	assert.Equal(t, int64(1), stats.ClosedMoms)
	assert.Equal(t, int64(1), stats.OverdueActions)
}

func TestStatsService_InvalidatedOnMutation(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	stats, err := moms.stats.GetMomStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalMoms)

	// the create must bust the cached zero
	_, err = moms.CreateMom(ctx, CreateMomInput{
		Title:       "Fresh",
		MeetingDate: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}, "user-1")
	assert.NoError(t, err)

	stats, err = moms.stats.GetMomStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalMoms)
}

func TestStatsService_InvalidatedOnDeadlineEdit(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom, err := moms.CreateMom(ctx, CreateMomInput{
		Title:       "Deadline Shift",
		MeetingDate: time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC),
	}, "user-1")
	assert.NoError(t, err)
	action, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "no deadline yet"}, "user-1")
	assert.NoError(t, err)

	stats, err := moms.stats.GetMomStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.OverdueActions)

	// moving the deadline into the past must bust the cached counter
	past := time.Now().Add(-time.Hour)
	_, err = moms.UpdateAction(ctx, action.ID, ActionPatch{Deadline: &past}, "user-1")
	assert.NoError(t, err)

	stats, err = moms.stats.GetMomStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.OverdueActions)
}
