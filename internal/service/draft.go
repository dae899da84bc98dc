package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateDraftInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateDraft adds a new revision. The version is the highest ever used for
// the parent plus one, counting soft-deleted drafts, so numbers are never
// reused.
func (s *MomService) CreateDraft(ctx context.Context, momID string, in CreateDraftInput, actor string) (*model.MomDraft, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationErrorf("draft title is required")
	}
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}

	max, err := s.store.MaxDraftVersion(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	draft := &model.MomDraft{
		ID:          uuid.New().String(),
		MomID:       momID,
		Version:     max + 1,
		Title:       in.Title,
		Description: in.Description,
		CreatedBy:   actor,
	}
	if err := s.store.CreateDraft(ctx, draft); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("create draft", auxEffect{"history", func() error {
		return s.store.AppendHistory(ctx, &model.MomHistory{
			ID:      uuid.New().String(),
			MomID:   momID,
			Action:  model.HistoryDraftAdded,
			Details: fmt.Sprintf("v%d %s", draft.Version, draft.Title),
			Actor:   actor,
		})
	}})

	return draft, nil
}

func (s *MomService) SaveDraftFile(ctx context.Context, id, fileName string, data []byte, actor string) (*model.MomDraft, error) {
	draft, err := s.getDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, validationErrorf("file name is required")
	}
	mom, err := s.getMom(ctx, draft.MomID)
	if err != nil {
		return nil, err
	}

	checksum := fsutil.Checksum(data)
	encoded, err := s.codec.Encode(data)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	rel := filepath.Join(fsutil.DraftsSubdir, fmt.Sprintf("v%d_%s", draft.Version, fsutil.Slug(fileName)))
	path, err := s.tree.WriteFile(mom.StoragePath, rel, encoded)
	if err != nil {
		return nil, &IOError{Err: err}
	}

	fields := map[string]interface{}{
		"file_path":     path,
		"file_name":     fileName,
		"file_type":     strings.TrimPrefix(filepath.Ext(fileName), "."),
		"file_size":     int64(len(data)),
		"file_checksum": checksum,
	}
	if err := s.store.UpdateDraftFields(ctx, id, fields); err != nil {
		return nil, &StorageError{Err: err}
	}

	return s.getDraft(ctx, id)
}

// DeleteDraft hides the catalog entry only. The physical file stays on disk
// so the artifact survives for audit.
func (s *MomService) DeleteDraft(ctx context.Context, id string, actor string) error {
	draft, err := s.getDraft(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.SoftDeleteDraft(ctx, id); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("delete draft", auxEffect{"history", func() error {
		return s.store.AppendHistory(ctx, &model.MomHistory{
			ID:      uuid.New().String(),
			MomID:   draft.MomID,
			Action:  model.HistoryDraftDeleted,
			Details: fmt.Sprintf("v%d %s", draft.Version, draft.Title),
			Actor:   actor,
		})
	}})

	return nil
}

func (s *MomService) ListDraftsByMom(ctx context.Context, momID string) ([]*model.MomDraft, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}
	drafts, err := s.store.ListDraftsByMom(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return drafts, nil
}

func (s *MomService) GetLatestDraft(ctx context.Context, momID string) (*model.MomDraft, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}
	draft, err := s.store.GetLatestDraft(ctx, momID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("mom %s has no drafts", momID)
		}
		return nil, &StorageError{Err: err}
	}
	return draft, nil
}

func (s *MomService) getDraft(ctx context.Context, id string) (*model.MomDraft, error) {
	draft, err := s.store.GetDraft(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("draft %s not found", id)
		}
		return nil, &StorageError{Err: err}
	}
	return draft, nil
}
