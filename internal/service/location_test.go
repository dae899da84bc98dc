package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationService_CreateLocation(t *testing.T) {
	_, locations, _ := setupServices()
	ctx := context.TODO()

	loc, err := locations.CreateLocation(ctx, CreateLocationInput{Name: "Conference Room A", SortOrder: 1}, "user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, loc.ID)
	assert.Equal(t, "Conference Room A", loc.Name)

	var validation *ValidationError
	_, err = locations.CreateLocation(ctx, CreateLocationInput{Name: "   "}, "user-1")
	assert.ErrorAs(t, err, &validation)
}

func TestLocationService_UpdateLocation(t *testing.T) {
	_, locations, _ := setupServices()
	ctx := context.TODO()

	loc, err := locations.CreateLocation(ctx, CreateLocationInput{Name: "Annex"}, "user-1")
	assert.NoError(t, err)

	newName := "Annex B"
	updated, err := locations.UpdateLocation(ctx, loc.ID, LocationPatch{Name: &newName}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	// no-op patch still succeeds
	_, err = locations.UpdateLocation(ctx, loc.ID, LocationPatch{}, "user-1")
	assert.NoError(t, err)

	var validation *ValidationError
	empty := " "
	_, err = locations.UpdateLocation(ctx, loc.ID, LocationPatch{Name: &empty}, "user-1")
	assert.ErrorAs(t, err, &validation)

	var notFound *NotFoundError
	_, err = locations.UpdateLocation(ctx, "missing", LocationPatch{Name: &newName}, "user-1")
	assert.ErrorAs(t, err, &notFound)
}

func TestLocationService_DeleteLocationInUse(t *testing.T) {
	moms, locations, _ := setupServices()
	ctx := context.TODO()

	loc, err := locations.CreateLocation(ctx, CreateLocationInput{Name: "Main Hall"}, "user-1")
	assert.NoError(t, err)

	_, err = moms.CreateMom(ctx, CreateMomInput{
		Title:       "Held in Main Hall",
		MeetingDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		LocationID:  loc.ID,
	}, "user-1")
	assert.NoError(t, err)

	var conflict *ConflictError
	err = locations.DeleteLocation(ctx, loc.ID, "user-1")
	assert.ErrorAs(t, err, &conflict)
	assert.Contains(t, err.Error(), "in use by 1 records")

	unused, err := locations.CreateLocation(ctx, CreateLocationInput{Name: "Storage Room"}, "user-1")
	assert.NoError(t, err)
	err = locations.DeleteLocation(ctx, unused.ID, "user-1")
	assert.NoError(t, err)

	locs, err := locations.ListLocations(ctx)
	assert.NoError(t, err)
	assert.Len(t, locs, 1)
}
