package service

import (
	"context"

	"github.com/archivedesk/minutes/internal/model"
)

// ListHistory returns the full chronological ledger for a Mom, annotating
// each entry with the acting user's display name where resolvable. Automatic
// entries show as "System"; an unresolvable actor keeps its raw id.
func (s *MomService) ListHistory(ctx context.Context, momID string) ([]*model.MomHistory, error) {
	if _, err := s.getMom(ctx, momID); err != nil {
		return nil, err
	}

	entries, err := s.store.ListHistory(ctx, momID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	names := make(map[string]string)
	for _, entry := range entries {
		if entry.Actor == model.SystemActor {
			entry.ActorName = "System"
			continue
		}
		name, seen := names[entry.Actor]
		if !seen {
			resolved, err := s.store.GetUserDisplayName(ctx, entry.Actor)
			if err != nil || resolved == "" {
				resolved = entry.Actor
			}
			names[entry.Actor] = resolved
			name = resolved
		}
		entry.ActorName = name
	}

	return entries, nil
}
