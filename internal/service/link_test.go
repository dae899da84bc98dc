package service

import (
	"context"
	"testing"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/tester"
	"github.com/stretchr/testify/assert"
)

func TestMomService_UnlinkTopicKeepsMinimumOne(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Linked")

	var validation *ValidationError
	err := moms.UnlinkTopic(ctx, mom.ID, "T1", "user-1")
	assert.ErrorAs(t, err, &validation)

	links, err := moms.GetLinkedTopics(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 1)

	err = moms.LinkTopic(ctx, mom.ID, "T2", "user-1")
	assert.NoError(t, err)

	err = moms.UnlinkTopic(ctx, mom.ID, "T1", "user-1")
	assert.NoError(t, err)

	links, err = moms.GetLinkedTopics(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Equal(t, "T2", links[0].TargetID)
}

func TestMomService_DuplicateLinkConflicts(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Duplicates")

	var conflict *ConflictError
	err := moms.LinkTopic(ctx, mom.ID, "T1", "user-1")
	assert.ErrorAs(t, err, &conflict)

	err = moms.LinkRecord(ctx, mom.ID, "R1", "user-1")
	assert.NoError(t, err)
	err = moms.LinkRecord(ctx, mom.ID, "R1", "user-1")
	assert.ErrorAs(t, err, &conflict)
}

func TestMomService_UnlinkRecordUnconstrained(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Records")

	err := moms.LinkRecord(ctx, mom.ID, "R1", "user-1")
	assert.NoError(t, err)
	err = moms.UnlinkRecord(ctx, mom.ID, "R1", "user-1")
	assert.NoError(t, err)

	links, err := moms.GetLinkedRecords(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 0)

	var notFound *NotFoundError
	err = moms.UnlinkRecord(ctx, mom.ID, "R1", "user-1")
	assert.ErrorAs(t, err, &notFound)
}

func TestMomService_LinkLetterRequiresBothSides(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Letters")

	var notFound *NotFoundError
	err := moms.LinkLetter(ctx, mom.ID, "L1", "user-1")
	assert.ErrorAs(t, err, &notFound)

	letter := &model.Letter{ID: "L1", Subject: "Approval"}
	assert.NoError(t, tester.TestDB().Create(letter).Error)

	err = moms.LinkLetter(ctx, mom.ID, "L1", "user-1")
	assert.NoError(t, err)

	var conflict *ConflictError
	err = moms.LinkLetter(ctx, mom.ID, "L1", "user-1")
	assert.ErrorAs(t, err, &conflict)

	links, err := moms.GetLinkedLetters(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Equal(t, "Approval", links[0].Title)
}

func TestMomService_DanglingReferentsTagged(t *testing.T) {
	moms, _, _ := setupServices()
	ctx := context.TODO()

	mom := createTestMom(t, moms, "Dangling")

	topic := &model.Topic{ID: "T-live", Title: "Procurement"}
	assert.NoError(t, tester.TestDB().Create(topic).Error)
	err := moms.LinkTopic(ctx, mom.ID, "T-live", "user-1")
	assert.NoError(t, err)

	assert.NoError(t, tester.TestDB().Delete(topic).Error)

	links, err := moms.GetLinkedTopics(ctx, mom.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 2)

	byID := make(map[string]*model.LinkedEntity)
	for _, link := range links {
		byID[link.TargetID] = link
	}

	// T1 never existed as a row, T-live was soft-deleted after linking
	assert.Equal(t, "topic_deleted", byID["T1"].DeletedReason)
	assert.Equal(t, "topic_deleted", byID["T-live"].DeletedReason)
	assert.Equal(t, "Procurement", byID["T-live"].Title)
}
