package service

import (
	"context"
	"errors"
	"strings"

	"github.com/archivedesk/minutes/internal/audit"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationService is the reference-data registry for meeting locations.
type LocationService struct {
	store store.Store
	audit *audit.Logger
}

func NewLocationService(store store.Store, auditor *audit.Logger) *LocationService {
	return &LocationService{store: store, audit: auditor}
}

type CreateLocationInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (s *LocationService) CreateLocation(ctx context.Context, in CreateLocationInput, actor string) (*model.MomLocation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErrorf("location name is required")
	}

	loc := &model.MomLocation{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		CreatedBy:   actor,
	}
	if err := s.store.CreateLocation(ctx, loc); err != nil {
		return nil, &StorageError{Err: err}
	}

	runAuxiliary("create location", auxEffect{"audit", func() error {
		s.audit.Log(ctx, audit.ActionLocationCreated, actor, "", "mom_location", loc.ID, map[string]interface{}{"name": loc.Name})
		return nil
	}})

	return loc, nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, id string, patch LocationPatch, actor string) (*model.MomLocation, error) {
	loc, err := s.store.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("location %s not found", id)
		}
		return nil, &StorageError{Err: err}
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, validationErrorf("location name is required")
		}
		patch.Name = &trimmed
	}

	_, fields := patch.Diff(loc)
	if len(fields) > 0 {
		if err := s.store.UpdateLocationFields(ctx, id, fields); err != nil {
			return nil, &StorageError{Err: err}
		}
	}

	runAuxiliary("update location", auxEffect{"audit", func() error {
		s.audit.Log(ctx, audit.ActionLocationUpdated, actor, "", "mom_location", id, nil)
		return nil
	}})

	updated, err := s.store.GetLocation(ctx, id)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return updated, nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id string, actor string) error {
	loc, err := s.store.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErrorf("location %s not found", id)
		}
		return &StorageError{Err: err}
	}

	inUse, err := s.store.CountMomsByLocation(ctx, id)
	if err != nil {
		return &StorageError{Err: err}
	}
	if inUse > 0 {
		return conflictErrorf("location %q is in use by %d records", loc.Name, inUse)
	}

	if err := s.store.SoftDeleteLocation(ctx, id); err != nil {
		return &StorageError{Err: err}
	}

	runAuxiliary("delete location", auxEffect{"audit", func() error {
		s.audit.Log(ctx, audit.ActionLocationDeleted, actor, "", "mom_location", id, map[string]interface{}{"name": loc.Name})
		return nil
	}})

	return nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*model.MomLocation, error) {
	locs, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return locs, nil
}
