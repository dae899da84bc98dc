package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMomService_DraftVersionsNeverReused(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Drafts")

	v1, err := moms.CreateDraft(ctx, mom.ID, CreateDraftInput{Title: "first pass"}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, v1.Version)

	v2, err := moms.CreateDraft(ctx, mom.ID, CreateDraftInput{Title: "second pass"}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, v2.Version)

	err = moms.DeleteDraft(ctx, v2.ID, "user-1")
	assert.NoError(t, err)

	// the deleted v2 still reserves its number
	v3, err := moms.CreateDraft(ctx, mom.ID, CreateDraftInput{Title: "third pass"}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 3, v3.Version)

	drafts, err := moms.ListDraftsByMom(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, drafts, 2)
	assert.Equal(t, 3, drafts[0].Version)
	assert.Equal(t, 1, drafts[1].Version)

	latest, err := moms.GetLatestDraft(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Equal(t, v3.ID, latest.ID)
}

func TestMomService_CreateDraftValidation(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Draft Validation")

	var validation *ValidationError
	_, err := moms.CreateDraft(ctx, mom.ID, CreateDraftInput{Title: " "}, "user-1")
	assert.ErrorAs(t, err, &validation)

	var notFound *NotFoundError
	_, err = moms.CreateDraft(ctx, "missing", CreateDraftInput{Title: "orphan"}, "user-1")
	assert.ErrorAs(t, err, &notFound)

	_, err = moms.GetLatestDraft(ctx, mom.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestMomService_SaveDraftFile(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Draft File")
	draft, err := moms.CreateDraft(ctx, mom.ID, CreateDraftInput{Title: "with file"}, "user-1")
	assert.NoError(t, err)

	content := []byte("draft body")
	saved, err := moms.SaveDraftFile(ctx, draft.ID, "notes.txt", content, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "notes.txt", saved.FileName)
	assert.Equal(t, int64(len(content)), saved.FileSize)
	assert.NotEmpty(t, saved.FileChecksum)
	assert.Contains(t, saved.FilePath, "drafts")
	assert.Contains(t, saved.FilePath, "v1_notes.txt")
}
