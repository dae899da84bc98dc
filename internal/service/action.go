package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateActionInput struct {
	Description      string     `json:"description"`
	ResponsibleParty string     `json:"responsible_party"`
	Deadline         *time.Time `json:"deadline"`
	ReminderDate     *time.Time `json:"reminder_date"`
}

func (s *MomService) CreateAction(ctx context.Context, momID string, in CreateActionInput, actor string) (*model.MomAction, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, validationErrorf("action description is required")
	}
	mom, err := s.getMom(ctx, momID)
	if err != nil {
		return nil, err
	}

	action := &model.MomAction{
		ID:               uuid.New().String(),
		MomID:            momID,
		Description:      in.Description,
		ResponsibleParty: in.ResponsibleParty,
		Deadline:         in.Deadline,
		ReminderDate:     in.ReminderDate,
		Status:           model.ActionStatusOpen,
		CreatedBy:        actor,
	}
	if err := s.store.CreateAction(ctx, action); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("create action",
		auxEffect{"history", func() error {
			return s.store.AppendHistory(ctx, &model.MomHistory{
				ID:      uuid.New().String(),
				MomID:   momID,
				Action:  model.HistoryActionCreated,
				Details: action.Description,
				Actor:   actor,
			})
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, mom)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
	)

	return action, nil
}

func (s *MomService) UpdateAction(ctx context.Context, id string, patch ActionPatch, actor string) (*model.MomAction, error) {
	action, err := s.getAction(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, validationErrorf("action description is required")
	}

	changes, fields := patch.Diff(action)
	if len(fields) == 0 {
		return action, nil
	}
	if err := s.store.UpdateActionFields(ctx, id, fields); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("update action",
		auxEffect{"history", func() error {
			for _, change := range changes {
				entry := &model.MomHistory{
					ID:        uuid.New().String(),
					MomID:     action.MomID,
					Action:    model.HistoryActionEdited,
					FieldName: change.Field,
					OldValue:  change.Old,
					NewValue:  change.New,
					Actor:     actor,
				}
				if err := s.store.AppendHistory(ctx, entry); err != nil {
					return err
				}
			}
			return nil
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportParentSidecar(ctx, action.MomID)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
	)

	return s.getAction(ctx, id)
}

// ResolveAction marks the action resolved. The status write is the
// authoritative step; history, the automatic-close check and the sidecar
// re-write each run independently afterwards.
func (s *MomService) ResolveAction(ctx context.Context, id, resolutionNote string, actor string) (*model.MomAction, error) {
	if strings.TrimSpace(resolutionNote) == "" {
		return nil, validationErrorf("resolution note is required")
	}
	action, err := s.getAction(ctx, id)
	if err != nil {
		return nil, err
	}
	if action.Status == model.ActionStatusResolved {
		return nil, conflictErrorf("action is already resolved")
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":          model.ActionStatusResolved,
		"resolution_note": resolutionNote,
		"resolved_by":     actor,
		"resolved_at":     now,
	}
	if err := s.store.UpdateActionFields(ctx, id, fields); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("resolve action",
		auxEffect{"history", func() error {
			return s.store.AppendHistory(ctx, &model.MomHistory{
				ID:      uuid.New().String(),
				MomID:   action.MomID,
				Action:  model.HistoryActionResolved,
				Details: action.Description,
				Actor:   actor,
			})
		}},
		auxEffect{"auto close", func() error {
			return s.raiseDerivedEvent(ctx, action.MomID, EventAllActionsResolved)
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportParentSidecar(ctx, action.MomID)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
	)

	return s.getAction(ctx, id)
}

// ReopenAction is the mirror of ResolveAction: the resolution fields are
// cleared atomically with the status flip, then the automatic-reopen check
// runs as a best-effort step.
func (s *MomService) ReopenAction(ctx context.Context, id string, actor string) (*model.MomAction, error) {
	action, err := s.getAction(ctx, id)
	if err != nil {
		return nil, err
	}
	if action.Status == model.ActionStatusOpen {
		return nil, conflictErrorf("action is already open")
	}

	fields := map[string]interface{}{
		"status":               model.ActionStatusOpen,
		"resolution_note":      "",
		"resolution_file_path": "",
		"resolution_file_name": "",
		"resolution_file_size": int64(0),
		"resolved_by":          nil,
		"resolved_at":          nil,
	}
	if err := s.store.UpdateActionFields(ctx, id, fields); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("reopen action",
		auxEffect{"history", func() error {
			return s.store.AppendHistory(ctx, &model.MomHistory{
				ID:      uuid.New().String(),
				MomID:   action.MomID,
				Action:  model.HistoryActionReopened,
				Details: action.Description,
				Actor:   actor,
			})
		}},
		auxEffect{"auto reopen", func() error {
			return s.raiseDerivedEvent(ctx, action.MomID, EventResolvedActionReopened)
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportParentSidecar(ctx, action.MomID)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
	)

	return s.getAction(ctx, id)
}

// SaveActionResolutionFile stores supporting evidence under the parent's
// actions/ subfolder. The action id prefixes the name to avoid collisions
// between actions of the same record.
func (s *MomService) SaveActionResolutionFile(ctx context.Context, id, fileName string, data []byte, actor string) (*model.MomAction, error) {
	action, err := s.getAction(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, validationErrorf("file name is required")
	}
	mom, err := s.getMom(ctx, action.MomID)
	if err != nil {
		return nil, err
	}

	encoded, err := s.codec.Encode(data)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	rel := filepath.Join(fsutil.ActionsSubdir, action.ID+"_"+fsutil.Slug(fileName))
	path, err := s.tree.WriteFile(mom.StoragePath, rel, encoded)
	if err != nil {
		return nil, &IOError{Err: err}
	}

	fields := map[string]interface{}{
		"resolution_file_path": path,
		"resolution_file_name": fileName,
		"resolution_file_size": int64(len(data)),
	}
	if err := s.store.UpdateActionFields(ctx, id, fields); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("save action file",
		auxEffect{"history", func() error {
			return s.store.AppendHistory(ctx, &model.MomHistory{
				ID:      uuid.New().String(),
				MomID:   action.MomID,
				Action:  model.HistoryFileUploaded,
				Details: fileName,
				Actor:   actor,
			})
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, mom)
		}},
	)

	return s.getAction(ctx, id)
}

func (s *MomService) ListActionsByMom(ctx context.Context, momID string) ([]*model.MomAction, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}
	actions, err := s.store.ListActionsByMom(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return actions, nil
}

// raiseDerivedEvent re-evaluates the parent's status after an action
// mutation. Events that do not apply to the current state are not taken:
// resolving an action on a Mom with other open actions is a no-op here.
func (s *MomService) raiseDerivedEvent(ctx context.Context, momID string, event StatusEvent) error {
	mom, err := s.store.GetMom(ctx, momID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	transition, ok := nextStatus(mom.Status, event)
	if !ok {
		return nil
	}

	if event == EventAllActionsResolved {
		total, open, err := s.store.CountActions(ctx, momID)
		if err != nil {
			return err
		}
		if total == 0 || open > 0 {
			return nil
		}
	}

	if err := s.applyTransition(ctx, mom, transition, model.SystemActor); err != nil {
		return err
	}
	mom.Status = transition.Next
	return s.exportSidecar(ctx, mom)
}

func (s *MomService) exportParentSidecar(ctx context.Context, momID string) error {
	mom, err := s.store.GetMom(ctx, momID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.exportSidecar(ctx, mom)
}

func (s *MomService) getAction(ctx context.Context, id string) (*model.MomAction, error) {
	action, err := s.store.GetAction(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("action %s not found", id)
		}
		return nil, &StorageError{Err: err}
	}
	return action, nil
}
