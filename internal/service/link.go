package service

import (
	"context"
	"time"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/google/uuid"
)

// The link layer ties a Mom to topics, records and letters owned by sibling
// modules. Unlinking topics enforces the one cross-cutting invariant here:
// every Mom must stay associated with at least one topic. Records and letters
// carry no minimum.

func (s *MomService) LinkTopic(ctx context.Context, momID, topicID string, actor string) error {
	if _, err := s.getMom(ctx, momID); err != nil {
		return err
	}
	exists, err := s.store.TopicLinkExists(ctx, momID, topicID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if exists {
		return conflictErrorf("topic is already linked")
	}

	link := &model.MomTopicLink{
		ID:        uuid.New().String(),
		MomID:     momID,
		TopicID:   topicID,
		CreatedBy: actor,
	}
	if err := s.store.CreateTopicLink(ctx, link); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("link topic", auxEffect{"history", func() error {
		return s.appendLinkHistory(ctx, momID, model.HistoryTopicLinked, topicID, actor)
	}})
	return nil
}

// UnlinkTopic removes a topic link unless it is the last one.
func (s *MomService) UnlinkTopic(ctx context.Context, momID, topicID string, actor string) error {
	if _, err := s.getMom(ctx, momID); err != nil {
		return err
	}
	count, err := s.store.CountTopicLinks(ctx, momID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if count <= 1 {
		return validationErrorf("at least one topic must remain linked")
	}

	removed, err := s.store.DeleteTopicLink(ctx, momID, topicID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !removed {
		return notFoundErrorf("topic link not found")
	}

	runAuxiliary("unlink topic", auxEffect{"history", func() error {
		return s.appendLinkHistory(ctx, momID, model.HistoryTopicUnlinked, topicID, actor)
	}})
	return nil
}

func (s *MomService) LinkRecord(ctx context.Context, momID, recordID string, actor string) error {
	if _, err := s.getMom(ctx, momID); err != nil {
		return err
	}
	exists, err := s.store.RecordLinkExists(ctx, momID, recordID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if exists {
		return conflictErrorf("record is already linked")
	}

	link := &model.MomRecordLink{
		ID:        uuid.New().String(),
		MomID:     momID,
		RecordID:  recordID,
		CreatedBy: actor,
	}
	if err := s.store.CreateRecordLink(ctx, link); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("link record", auxEffect{"history", func() error {
		return s.appendLinkHistory(ctx, momID, model.HistoryRecordLinked, recordID, actor)
	}})
	return nil
}

func (s *MomService) UnlinkRecord(ctx context.Context, momID, recordID string, actor string) error {
	if _, err := s.getMom(ctx, momID); err != nil {
		return err
	}
	removed, err := s.store.DeleteRecordLink(ctx, momID, recordID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !removed {
		return notFoundErrorf("record link not found")
	}

	runAuxiliary("unlink record", auxEffect{"history", func() error {
		return s.appendLinkHistory(ctx, momID, model.HistoryRecordUnlinked, recordID, actor)
	}})
	return nil
}

// LinkLetter verifies both sides exist before inserting, bumps the parent's
// updated_at and re-writes the sidecar on success.
func (s *MomService) LinkLetter(ctx context.Context, momID, letterID string, actor string) error {
	mom, err := s.getMom(ctx, momID)
	if err != nil {
		return err
	}
	letterExists, err := s.store.LetterExists(ctx, letterID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !letterExists {
		return notFoundErrorf("letter %s not found", letterID)
	}

	exists, err := s.store.LetterLinkExists(ctx, momID, letterID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if exists {
		return conflictErrorf("letter is already linked")
	}

	link := &model.MomLetterLink{
		ID:        uuid.New().String(),
		MomID:     momID,
		LetterID:  letterID,
		CreatedBy: actor,
	}
	if err := s.store.CreateLetterLink(ctx, link); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("link letter",
		auxEffect{"history", func() error {
			return s.appendLinkHistory(ctx, momID, model.HistoryLetterLinked, letterID, actor)
		}},
		auxEffect{"touch parent", func() error {
			return s.store.UpdateMomFields(ctx, momID, map[string]interface{}{"updated_at": time.Now()})
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, mom)
		}},
	)
	return nil
}

func (s *MomService) UnlinkLetter(ctx context.Context, momID, letterID string, actor string) error {
	if _, err := s.getMom(ctx, momID); err != nil {
		return err
	}
	removed, err := s.store.DeleteLetterLink(ctx, momID, letterID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !removed {
		return notFoundErrorf("letter link not found")
	}

	runAuxiliary("unlink letter", auxEffect{"history", func() error {
		return s.appendLinkHistory(ctx, momID, model.HistoryLetterUnlinked, letterID, actor)
	}})
	return nil
}

// Link read projections tolerate dangling referents: a deleted target keeps
// its row, tagged with a deleted reason, instead of disappearing or erroring.

func (s *MomService) GetLinkedTopics(ctx context.Context, momID string) ([]*model.LinkedEntity, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}
	links, err := s.store.ListTopicLinks(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return links, nil
}

func (s *MomService) GetLinkedRecords(ctx context.Context, momID string) ([]*model.LinkedEntity, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}
	links, err := s.store.ListRecordLinks(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return links, nil
}

func (s *MomService) GetLinkedLetters(ctx context.Context, momID string) ([]*model.LinkedEntity, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}
	links, err := s.store.ListLetterLinks(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return links, nil
}

func (s *MomService) appendLinkHistory(ctx context.Context, momID, action, targetID, actor string) error {
	return s.store.AppendHistory(ctx, &model.MomHistory{
		ID:      uuid.New().String(),
		MomID:   momID,
		Action:  action,
		Details: targetID,
		Actor:   actor,
	})
}
