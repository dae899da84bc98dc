package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/archivedesk/minutes/internal/audit"
	"github.com/archivedesk/minutes/internal/compress"
	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/metadata"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MomService owns the Mom aggregate: the record itself, its action items,
// draft revisions, link rows, history ledger and archive folder. The database
// write is the authoritative step of every mutation; folder layout, sidecar
// export and audit entries run afterwards as independent best-effort steps.
type MomService struct {
	store  store.Store
	tree   *fsutil.Tree
	export *metadata.Exporter
	audit  *audit.Logger
	codec  compress.Compress
	stats  *StatsService
}

func NewMomService(st store.Store, tree *fsutil.Tree, export *metadata.Exporter, auditor *audit.Logger, codec compress.Compress, stats *StatsService) *MomService {
	return &MomService{store: st, tree: tree, export: export, audit: auditor, codec: codec, stats: stats}
}

type CreateMomInput struct {
	MomNumber   string    `json:"mom_number"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	MeetingDate time.Time `json:"meeting_date"`
	LocationID  string    `json:"location_id"`
	TopicIDs    []string  `json:"topic_ids"`
	RecordIDs   []string  `json:"record_ids"`
}

type MomPage struct {
	Data    []*model.Mom `json:"data"`
	Total   int64        `json:"total"`
	HasMore bool         `json:"has_more"`
}

func (s *MomService) CreateMom(ctx context.Context, in CreateMomInput, actor string) (*model.Mom, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErrorf("title is required")
	}
	if in.MeetingDate.IsZero() {
		in.MeetingDate = time.Now()
	}

	number := strings.TrimSpace(in.MomNumber)
	if number != "" {
		taken, err := s.store.MomNumberInUse(ctx, number, "")
		if err != nil {
			return nil, &StorageError{Err: err}
		}
		if taken {
			return nil, conflictErrorf("mom number %q is already in use", number)
		}
	}

	if in.LocationID != "" {
		if _, err := s.store.GetLocation(ctx, in.LocationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundErrorf("location %s not found", in.LocationID)
			}
			return nil, &StorageError{Err: err}
		}
	}

	id := uuid.New().String()
	ref := number
	if ref == "" {
		ref = id
	}

	mom := &model.Mom{
		ID:          id,
		Title:       title,
		Subject:     in.Subject,
		MeetingDate: in.MeetingDate,
		Status:      model.MomStatusOpen,
		StoragePath: fsutil.StoragePath(in.MeetingDate, ref, title),
		CreatedBy:   actor,
	}
	if number != "" {
		mom.MomNumber = &number
	}
	if in.LocationID != "" {
		locID := in.LocationID
		mom.LocationID = &locID
	}

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateMom(ctx, mom); err != nil {
			return err
		}
		for _, topicID := range in.TopicIDs {
			link := &model.MomTopicLink{
				ID:        uuid.New().String(),
				MomID:     mom.ID,
				TopicID:   topicID,
				CreatedBy: actor,
			}
			if err := tx.CreateTopicLink(ctx, link); err != nil {
				return err
			}
		}
		for _, recordID := range in.RecordIDs {
			link := &model.MomRecordLink{
				ID:        uuid.New().String(),
				MomID:     mom.ID,
				RecordID:  recordID,
				CreatedBy: actor,
			}
			if err := tx.CreateRecordLink(ctx, link); err != nil {
				return err
			}
		}
		return tx.AppendHistory(ctx, &model.MomHistory{
			ID:     uuid.New().String(),
			MomID:  mom.ID,
			Action: model.HistoryCreated,
			Actor:  actor,
		})
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("create mom",
		auxEffect{"folder layout", func() error {
			return s.tree.EnsureMomLayout(mom.StoragePath)
		}},
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, mom)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
		auxEffect{"audit", func() error {
			s.audit.Log(ctx, audit.ActionMomCreated, actor, "", "mom", mom.ID, map[string]interface{}{"title": mom.Title})
			return nil
		}},
	)

	return mom, nil
}

// UpdateMom applies a partial edit. The storage path is never recomputed: a
// renamed record keeps the folder derived from its original title.
func (s *MomService) UpdateMom(ctx context.Context, id string, patch MomPatch, actor string) (*model.Mom, error) {
	mom, err := s.getMom(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, validationErrorf("title is required")
	}
	if patch.MomNumber != nil {
		number := strings.TrimSpace(*patch.MomNumber)
		patch.MomNumber = &number
		if number != "" {
			taken, err := s.store.MomNumberInUse(ctx, number, id)
			if err != nil {
				return nil, &StorageError{Err: err}
			}
			if taken {
				return nil, conflictErrorf("mom number %q is already in use", number)
			}
		}
	}
	if patch.LocationID != nil && *patch.LocationID != "" {
		if _, err := s.store.GetLocation(ctx, *patch.LocationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundErrorf("location %s not found", *patch.LocationID)
			}
			return nil, &StorageError{Err: err}
		}
	}

	changes, fields := patch.Diff(mom)
	if len(fields) == 0 {
		return mom, nil
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateMomFields(ctx, id, fields); err != nil {
			return err
		}
		for _, change := range changes {
			entry := &model.MomHistory{
				ID:        uuid.New().String(),
				MomID:     id,
				Action:    model.HistoryFieldEdit,
				FieldName: change.Field,
				OldValue:  change.Old,
				NewValue:  change.New,
				Actor:     actor,
			}
			if err := tx.AppendHistory(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	updated, err := s.getMom(ctx, id)
	if err != nil {
		return nil, err
	}

	runAuxiliary("update mom",
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, updated)
		}},
		auxEffect{"audit", func() error {
			s.audit.Log(ctx, audit.ActionMomUpdated, actor, "", "mom", id, nil)
			return nil
		}},
	)

	return updated, nil
}

// DeleteMom soft-deletes the record and then removes its archive folder,
// pruning date buckets left empty. A folder removal failure leaves the
// database delete in place.
func (s *MomService) DeleteMom(ctx context.Context, id string, actor string) error {
	mom, err := s.getMom(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.SoftDeleteMom(ctx, id); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("delete mom",
		auxEffect{"folder cleanup", func() error {
			return s.tree.RemoveMomDir(mom.StoragePath)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
		auxEffect{"audit", func() error {
			s.audit.Log(ctx, audit.ActionMomDeleted, actor, "", "mom", id, map[string]interface{}{"title": mom.Title})
			return nil
		}},
	)

	return nil
}

// DeleteAllMoms wipes the whole archive: every Mom with its actions, drafts,
// links, and history goes in one transaction, then each archive folder is
// removed best-effort.
func (s *MomService) DeleteAllMoms(ctx context.Context, actor string) error {
	paths, err := s.store.ListMomStoragePaths(ctx)
	if err != nil {
		return &StorageError{Err: err}
	}

	if err := s.store.DeleteAllMoms(ctx); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("delete all moms",
		auxEffect{"folder cleanup", func() error {
			for _, path := range paths {
				if err := s.tree.RemoveMomDir(path); err != nil {
					return err
				}
			}
			return nil
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
		auxEffect{"audit", func() error {
			s.audit.Log(ctx, audit.ActionArchivePurged, actor, "", "mom", "", map[string]interface{}{"purged": len(paths)})
			return nil
		}},
	)

	return nil
}

func (s *MomService) CloseMom(ctx context.Context, id string, actor string) (*model.Mom, error) {
	return s.requestStatusChange(ctx, id, EventCloseRequested, actor, audit.ActionMomClosed)
}

func (s *MomService) ReopenMom(ctx context.Context, id string, actor string) (*model.Mom, error) {
	return s.requestStatusChange(ctx, id, EventReopenRequested, actor, audit.ActionMomReopened)
}

func (s *MomService) requestStatusChange(ctx context.Context, id string, event StatusEvent, actor, auditAction string) (*model.Mom, error) {
	mom, err := s.getMom(ctx, id)
	if err != nil {
		return nil, err
	}

	transition, ok := nextStatus(mom.Status, event)
	if !ok {
		return nil, conflictErrorf("mom is already %s", mom.Status)
	}

	if err := s.applyTransition(ctx, mom, transition, actor); err != nil {
		return nil, err
	}
	mom.Status = transition.Next

	runAuxiliary("change mom status",
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, mom)
		}},
		auxEffect{"stats cache", func() error {
			return s.stats.Invalidate(ctx)
		}},
		auxEffect{"audit", func() error {
			s.audit.Log(ctx, auditAction, actor, "", "mom", id, nil)
			return nil
		}},
	)

	return mom, nil
}

// applyTransition persists a status flip plus its single ledger row in one
// transaction. Manual and derived transitions take the same path; derived
// ones pass model.SystemActor.
func (s *MomService) applyTransition(ctx context.Context, mom *model.Mom, transition statusTransition, actor string) error {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateMomFields(ctx, mom.ID, map[string]interface{}{"status": transition.Next}); err != nil {
			return err
		}
		return tx.AppendHistory(ctx, &model.MomHistory{
			ID:        uuid.New().String(),
			MomID:     mom.ID,
			Action:    transition.HistoryAction,
			FieldName: "status",
			OldValue:  mom.Status,
			NewValue:  transition.Next,
			Actor:     actor,
		})
	})
	if err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (s *MomService) GetMom(ctx context.Context, id string) (*model.MomWithCounters, error) {
	mom, err := s.getMom(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCounters(ctx, mom)
}

func (s *MomService) GetMomByNumber(ctx context.Context, number string) (*model.MomWithCounters, error) {
	mom, err := s.store.GetMomByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("mom %s not found", number)
		}
		return nil, &StorageError{Err: err}
	}
	return s.withCounters(ctx, mom)
}

func (s *MomService) ListMoms(ctx context.Context, filter store.MomFilter) (*MomPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	moms, total, err := s.store.ListMoms(ctx, filter)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return &MomPage{
		Data:    moms,
		Total:   total,
		HasMore: int64(filter.Offset+len(moms)) < total,
	}, nil
}

// SaveMomPrimaryFile archives the final signed minutes under the record's
// mom/ subfolder. The checksum covers the original bytes; the codec only
// affects what lands on disk.
func (s *MomService) SaveMomPrimaryFile(ctx context.Context, id, fileName string, data []byte, actor string) (*model.Mom, error) {
	mom, err := s.getMom(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, validationErrorf("file name is required")
	}
	if len(data) == 0 {
		return nil, validationErrorf("file content is empty")
	}

	checksum := fsutil.Checksum(data)
	encoded, err := s.codec.Encode(data)
	if err != nil {
		return nil, &IOError{Err: err}
	}

	safeName := fsutil.Slug(fileName)
	if _, err := s.tree.WriteFile(mom.StoragePath, filepath.Join(fsutil.MomSubdir, safeName), encoded); err != nil {
		return nil, &IOError{Err: err}
	}

	fields := map[string]interface{}{
		"file_name":     fileName,
		"file_type":     strings.TrimPrefix(filepath.Ext(fileName), "."),
		"file_size":     int64(len(data)),
		"file_checksum": checksum,
	}
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateMomFields(ctx, id, fields); err != nil {
			return err
		}
		return tx.AppendHistory(ctx, &model.MomHistory{
			ID:      uuid.New().String(),
			MomID:   id,
			Action:  model.HistoryFileUploaded,
			Details: fileName,
			Actor:   actor,
		})
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	updated, err := s.getMom(ctx, id)
	if err != nil {
		return nil, err
	}

	runAuxiliary("archive mom file",
		auxEffect{"sidecar export", func() error {
			return s.exportSidecar(ctx, updated)
		}},
		auxEffect{"audit", func() error {
			s.audit.Log(ctx, audit.ActionFileArchived, actor, "", "mom", id, map[string]interface{}{"file_name": fileName})
			return nil
		}},
	)

	return updated, nil
}

func (s *MomService) getMom(ctx context.Context, id string) (*model.Mom, error) {
	mom, err := s.store.GetMom(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("mom %s not found", id)
		}
		return nil, &StorageError{Err: err}
	}
	return mom, nil
}

func (s *MomService) withCounters(ctx context.Context, mom *model.Mom) (*model.MomWithCounters, error) {
	counters, err := s.store.GetMomCounters(ctx, mom.ID, time.Now())
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return &model.MomWithCounters{Mom: *mom, Counters: counters}, nil
}

// exportSidecar rebuilds metadata.json from the current database state.
func (s *MomService) exportSidecar(ctx context.Context, mom *model.Mom) error {
	locationName := ""
	if mom.LocationID != nil {
		loc, err := s.store.GetLocation(ctx, *mom.LocationID)
		if err == nil {
			locationName = loc.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	topicLinks, err := s.store.ListTopicLinks(ctx, mom.ID)
	if err != nil {
		return err
	}
	topics := make([]string, 0, len(topicLinks))
	for _, link := range topicLinks {
		title := link.Title
		if title == "" {
			title = link.TargetID
		}
		topics = append(topics, title)
	}

	actions, err := s.store.ListActionsByMom(ctx, mom.ID)
	if err != nil {
		return err
	}

	return s.export.Write(mom, locationName, topics, actions)
}
