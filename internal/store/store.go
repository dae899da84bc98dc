package store

import (
	"context"
	"time"

	"github.com/archivedesk/minutes/internal/model"
)

type Store interface {
	LocationStore
	MomStore
	ActionStore
	DraftStore
	HistoryStore
	LinkStore
	SiblingStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

// MomFilter combines conjunctively; zero values mean "no constraint".
type MomFilter struct {
	Status     string
	LocationID string
	TopicID    string
	From       *time.Time
	To         *time.Time
	Search     string
	Limit      int
	Offset     int
}

type LocationStore interface {
	// CreateLocation inserts a new location.
	CreateLocation(ctx context.Context, loc *model.MomLocation) error
	// GetLocation retrieves a non-deleted location by ID.
	GetLocation(ctx context.Context, id string) (*model.MomLocation, error)
	// UpdateLocationFields applies the given column assignments.
	UpdateLocationFields(ctx context.Context, id string, fields map[string]interface{}) error
	// SoftDeleteLocation marks the location deleted.
	SoftDeleteLocation(ctx context.Context, id string) error
	// ListLocations returns non-deleted locations ordered by (sort_order, name).
	ListLocations(ctx context.Context) ([]*model.MomLocation, error)
	// CountMomsByLocation counts non-deleted Moms referencing the location.
	CountMomsByLocation(ctx context.Context, locationID string) (int64, error)
}

type MomStore interface {
	// CreateMom inserts a new Mom row.
	CreateMom(ctx context.Context, mom *model.Mom) error
	// GetMom retrieves a non-deleted Mom by internal ID.
	GetMom(ctx context.Context, id string) (*model.Mom, error)
	// GetMomByNumber retrieves a non-deleted Mom by its human-assigned number.
	GetMomByNumber(ctx context.Context, number string) (*model.Mom, error)
	// MomNumberInUse reports whether a non-deleted Mom other than excludeID holds the number.
	MomNumberInUse(ctx context.Context, number, excludeID string) (bool, error)
	// UpdateMomFields applies the given column assignments.
	UpdateMomFields(ctx context.Context, id string, fields map[string]interface{}) error
	// SoftDeleteMom marks the Mom deleted.
	SoftDeleteMom(ctx context.Context, id string) error
	// ListMoms returns a filtered page and the unpaginated total.
	ListMoms(ctx context.Context, filter MomFilter) ([]*model.Mom, int64, error)
	// GetMomCounters computes the derived per-Mom statistics at read time.
	GetMomCounters(ctx context.Context, id string, now time.Time) (model.MomCounters, error)
	// GetMomStats computes the global counters at call time.
	GetMomStats(ctx context.Context, now time.Time) (model.MomStats, error)
	// ListMomStoragePaths returns every storage path ever assigned, deleted
	// rows included.
	ListMomStoragePaths(ctx context.Context) ([]string, error)
	// DeleteAllMoms hard-deletes every Mom together with its actions, drafts,
	// links, and history as one transaction.
	DeleteAllMoms(ctx context.Context) error
}

type ActionStore interface {
	// CreateAction inserts a new action item.
	CreateAction(ctx context.Context, action *model.MomAction) error
	// GetAction retrieves an action by ID.
	GetAction(ctx context.Context, id string) (*model.MomAction, error)
	// UpdateActionFields applies the given column assignments.
	UpdateActionFields(ctx context.Context, id string, fields map[string]interface{}) error
	// ListActionsByMom returns a Mom's actions, open first, then by ascending
	// deadline with nulls last, then by creation order.
	ListActionsByMom(ctx context.Context, momID string) ([]*model.MomAction, error)
	// CountActions returns (total, open) action counts for a Mom.
	CountActions(ctx context.Context, momID string) (int64, int64, error)
	// ListActionsWithDueReminders returns open, un-notified actions whose
	// reminder date has passed and whose parent is not deleted.
	ListActionsWithDueReminders(ctx context.Context, now time.Time) ([]*model.MomAction, error)
	// ListActionsWithDeadlines returns all open actions with a deadline whose
	// parent is not deleted, ascending by deadline.
	ListActionsWithDeadlines(ctx context.Context) ([]*model.MomAction, error)
	// MarkReminderNotified sets the reminder-notified flag.
	MarkReminderNotified(ctx context.Context, id string) error
}

type DraftStore interface {
	// CreateDraft inserts a new draft revision.
	CreateDraft(ctx context.Context, draft *model.MomDraft) error
	// GetDraft retrieves a non-deleted draft by ID.
	GetDraft(ctx context.Context, id string) (*model.MomDraft, error)
	// MaxDraftVersion returns the highest version ever used for the parent,
	// soft-deleted drafts included. Zero when none exist.
	MaxDraftVersion(ctx context.Context, momID string) (int, error)
	// UpdateDraftFields applies the given column assignments.
	UpdateDraftFields(ctx context.Context, id string, fields map[string]interface{}) error
	// SoftDeleteDraft marks the draft deleted; the physical file is untouched.
	SoftDeleteDraft(ctx context.Context, id string) error
	// ListDraftsByMom returns non-deleted drafts, version descending.
	ListDraftsByMom(ctx context.Context, momID string) ([]*model.MomDraft, error)
	// GetLatestDraft returns the highest-version non-deleted draft.
	GetLatestDraft(ctx context.Context, momID string) (*model.MomDraft, error)
}

type HistoryStore interface {
	// AppendHistory appends a ledger row; rows are never mutated afterwards.
	AppendHistory(ctx context.Context, entry *model.MomHistory) error
	// ListHistory returns the full chronological ledger for a Mom.
	ListHistory(ctx context.Context, momID string) ([]*model.MomHistory, error)
}

type LinkStore interface {
	CreateTopicLink(ctx context.Context, link *model.MomTopicLink) error
	DeleteTopicLink(ctx context.Context, momID, topicID string) (bool, error)
	TopicLinkExists(ctx context.Context, momID, topicID string) (bool, error)
	CountTopicLinks(ctx context.Context, momID string) (int64, error)
	ListTopicLinks(ctx context.Context, momID string) ([]*model.LinkedEntity, error)

	CreateRecordLink(ctx context.Context, link *model.MomRecordLink) error
	DeleteRecordLink(ctx context.Context, momID, recordID string) (bool, error)
	RecordLinkExists(ctx context.Context, momID, recordID string) (bool, error)
	ListRecordLinks(ctx context.Context, momID string) ([]*model.LinkedEntity, error)

	CreateLetterLink(ctx context.Context, link *model.MomLetterLink) error
	DeleteLetterLink(ctx context.Context, momID, letterID string) (bool, error)
	LetterLinkExists(ctx context.Context, momID, letterID string) (bool, error)
	ListLetterLinks(ctx context.Context, momID string) ([]*model.LinkedEntity, error)
}

type SiblingStore interface {
	// LetterExists reports whether a non-deleted letter row exists.
	LetterExists(ctx context.Context, id string) (bool, error)
	// GetUserDisplayName resolves a user ID to a display name.
	GetUserDisplayName(ctx context.Context, id string) (string, error)
	// ListTopicTitles returns titles for the given topic IDs, deleted included.
	ListTopicTitles(ctx context.Context, ids []string) (map[string]string, error)
}
