package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/tester"
	"github.com/stretchr/testify/assert"
)

func TestMomService_SaveMomPrimaryFile(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "With File")

	content := []byte("signed minutes")
	updated, err := moms.SaveMomPrimaryFile(ctx, mom.ID, "final.pdf", content, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "final.pdf", updated.FileName)
	assert.Equal(t, "pdf", updated.FileType)
	assert.Equal(t, int64(len(content)), updated.FileSize)
	assert.Equal(t, fsutil.Checksum(content), updated.FileChecksum)

	path := filepath.Join(moms.tree.MomDir(mom.StoragePath), fsutil.MomSubdir, "final.pdf")
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, content, data)

	entries, err := moms.ListHistory(ctx, mom.ID)
	assert.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, model.HistoryFileUploaded, last.Action)
	assert.Equal(t, "final.pdf", last.Details)

	var validation *ValidationError
	_, err = moms.SaveMomPrimaryFile(ctx, mom.ID, " ", content, "user-1")
	assert.ErrorAs(t, err, &validation)
	_, err = moms.SaveMomPrimaryFile(ctx, mom.ID, "empty.pdf", nil, "user-1")
	assert.ErrorAs(t, err, &validation)
}

func TestMomService_SaveActionResolutionFile(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Action Evidence")
	action, err := moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "collect evidence"}, "user-1")
	assert.NoError(t, err)

	content := []byte("receipt")
	updated, err := moms.SaveActionResolutionFile(ctx, action.ID, "receipt.png", content, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "receipt.png", updated.ResolutionFileName)
	assert.Equal(t, int64(len(content)), updated.ResolutionFileSize)
	assert.Contains(t, updated.ResolutionFilePath, action.ID+"_receipt.png")

	data, err := os.ReadFile(updated.ResolutionFilePath)
	assert.NoError(t, err)
	assert.Equal(t, content, data)

	entries, err := moms.ListHistory(ctx, mom.ID)
	assert.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, model.HistoryFileUploaded, last.Action)
	assert.Equal(t, "receipt.png", last.Details)

	_, err = os.Stat(moms.export.Path(mom.StoragePath))
	assert.NoError(t, err)
}

func TestMomService_CreateMomWritesSidecar(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Sidecar Check")

	sidecar := moms.export.Path(mom.StoragePath)
	info, err := os.Stat(sidecar)
	assert.NoError(t, err)

	// action mutations re-export the sidecar
	_, err = moms.CreateAction(ctx, mom.ID, CreateActionInput{Description: "follow up"}, "user-1")
	assert.NoError(t, err)
	after, err := os.Stat(sidecar)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, after.Size(), info.Size())
}

func TestMomService_HistoryActorNames(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	user := &model.User{ID: "user-1", DisplayName: "Pat Doe"}
	assert.NoError(t, tester.TestDB().Create(user).Error)

	mom := createTestMom(t, moms, "Named Actors")
	_, err := moms.CloseMom(ctx, mom.ID, "user-2")
	assert.NoError(t, err)

	entries, err := moms.ListHistory(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Pat Doe", entries[0].ActorName)
	// unknown ids fall back to the raw id
	assert.Equal(t, "user-2", entries[1].ActorName)
}
