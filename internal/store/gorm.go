package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/archivedesk/minutes/internal/model"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

// locations

func (g *GormStore) CreateLocation(ctx context.Context, loc *model.MomLocation) error {
	return g.db.WithContext(ctx).Create(loc).Error
}

func (g *GormStore) GetLocation(ctx context.Context, id string) (*model.MomLocation, error) {
	var loc model.MomLocation
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (g *GormStore) UpdateLocationFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&model.MomLocation{}).Where("id = ?", id).Updates(fields).Error
}

func (g *GormStore) SoftDeleteLocation(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MomLocation{}).Error
}

func (g *GormStore) ListLocations(ctx context.Context) ([]*model.MomLocation, error) {
	var locs []*model.MomLocation
	err := g.db.WithContext(ctx).Order("sort_order asc").Order("name asc").Find(&locs).Error
	return locs, err
}

func (g *GormStore) CountMomsByLocation(ctx context.Context, locationID string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Mom{}).Where("location_id = ?", locationID).Count(&count).Error
	return count, err
}

// moms

func (g *GormStore) CreateMom(ctx context.Context, mom *model.Mom) error {
	return g.db.WithContext(ctx).Create(mom).Error
}

func (g *GormStore) GetMom(ctx context.Context, id string) (*model.Mom, error) {
	var mom model.Mom
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&mom).Error
	if err != nil {
		return nil, err
	}
	return &mom, nil
}

func (g *GormStore) GetMomByNumber(ctx context.Context, number string) (*model.Mom, error) {
	var mom model.Mom
	err := g.db.WithContext(ctx).Where("mom_number = ?", number).First(&mom).Error
	if err != nil {
		return nil, err
	}
	return &mom, nil
}

func (g *GormStore) MomNumberInUse(ctx context.Context, number, excludeID string) (bool, error) {
	var count int64
	query := g.db.WithContext(ctx).Model(&model.Mom{}).Where("mom_number = ?", number)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (g *GormStore) UpdateMomFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&model.Mom{}).Where("id = ?", id).Updates(fields).Error
}

func (g *GormStore) SoftDeleteMom(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Mom{}).Error
}

func (g *GormStore) ListMoms(ctx context.Context, filter MomFilter) ([]*model.Mom, int64, error) {
	query := g.db.WithContext(ctx).Model(&model.Mom{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LocationID != "" {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.TopicID != "" {
		query = query.Where("EXISTS (SELECT 1 FROM mom_topic_links WHERE mom_topic_links.mom_id = moms.id AND mom_topic_links.topic_id = ?)", filter.TopicID)
	}
	if filter.From != nil {
		query = query.Where("meeting_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("meeting_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("mom_number LIKE ? OR title LIKE ? OR subject LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("meeting_date desc").Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var moms []*model.Mom
	err := query.Find(&moms).Error
	return moms, total, err
}

func (g *GormStore) GetMomCounters(ctx context.Context, id string, now time.Time) (model.MomCounters, error) {
	var counters model.MomCounters
	db := g.db.WithContext(ctx)

	if err := db.Model(&model.MomTopicLink{}).Where("mom_id = ?", id).Count(&counters.TopicCount).Error; err != nil {
		return counters, err
	}
	if err := db.Model(&model.MomRecordLink{}).Where("mom_id = ?", id).Count(&counters.RecordCount).Error; err != nil {
		return counters, err
	}
	if err := db.Model(&model.MomAction{}).Where("mom_id = ?", id).Count(&counters.TotalActions).Error; err != nil {
		return counters, err
	}
	if err := db.Model(&model.MomAction{}).Where("mom_id = ? AND status = ?", id, model.ActionStatusResolved).Count(&counters.ResolvedActions).Error; err != nil {
		return counters, err
	}
	err := db.Model(&model.MomAction{}).
		Where("mom_id = ? AND status = ? AND deadline IS NOT NULL AND deadline < ?", id, model.ActionStatusOpen, now).
		Count(&counters.OverdueActions).Error
	return counters, err
}

func (g *GormStore) GetMomStats(ctx context.Context, now time.Time) (model.MomStats, error) {
	var stats model.MomStats
	db := g.db.WithContext(ctx)

	if err := db.Model(&model.Mom{}).Count(&stats.TotalMoms).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Mom{}).Where("status = ?", model.MomStatusOpen).Count(&stats.OpenMoms).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Mom{}).Where("status = ?", model.MomStatusClosed).Count(&stats.ClosedMoms).Error; err != nil {
		return stats, err
	}
	err := db.Model(&model.MomAction{}).
		Joins("JOIN moms ON moms.id = mom_actions.mom_id AND moms.deleted_at IS NULL").
		Where("mom_actions.status = ? AND mom_actions.deadline IS NOT NULL AND mom_actions.deadline < ?", model.ActionStatusOpen, now).
		Count(&stats.OverdueActions).Error
	return stats, err
}

func (g *GormStore) ListMomStoragePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := g.db.WithContext(ctx).Model(&model.Mom{}).Unscoped().
		Where("storage_path <> ''").
		Pluck("storage_path", &paths).Error
	return paths, err
}

func (g *GormStore) DeleteAllMoms(ctx context.Context) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{
			&model.MomHistory{},
			&model.MomTopicLink{},
			&model.MomRecordLink{},
			&model.MomLetterLink{},
			&model.MomDraft{},
			&model.MomAction{},
			&model.Mom{},
		} {
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// actions

func (g *GormStore) CreateAction(ctx context.Context, action *model.MomAction) error {
	return g.db.WithContext(ctx).Create(action).Error
}

func (g *GormStore) GetAction(ctx context.Context, id string) (*model.MomAction, error) {
	var action model.MomAction
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&action).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func (g *GormStore) UpdateActionFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&model.MomAction{}).Where("id = ?", id).Updates(fields).Error
}

func (g *GormStore) ListActionsByMom(ctx context.Context, momID string) ([]*model.MomAction, error) {
	var actions []*model.MomAction
	err := g.db.WithContext(ctx).
		Where("mom_id = ?", momID).
		Order("CASE WHEN status = 'open' THEN 0 ELSE 1 END").
		Order("deadline IS NULL").
		Order("deadline asc").
		Order("created_at asc").
		Find(&actions).Error
	return actions, err
}

func (g *GormStore) CountActions(ctx context.Context, momID string) (int64, int64, error) {
	var total, open int64
	db := g.db.WithContext(ctx)
	if err := db.Model(&model.MomAction{}).Where("mom_id = ?", momID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := db.Model(&model.MomAction{}).Where("mom_id = ? AND status = ?", momID, model.ActionStatusOpen).Count(&open).Error
	return total, open, err
}

func (g *GormStore) ListActionsWithDueReminders(ctx context.Context, now time.Time) ([]*model.MomAction, error) {
	var actions []*model.MomAction
	err := g.db.WithContext(ctx).
		Joins("JOIN moms ON moms.id = mom_actions.mom_id AND moms.deleted_at IS NULL").
		Where("mom_actions.status = ?", model.ActionStatusOpen).
		Where("mom_actions.reminder_notified = ?", false).
		Where("mom_actions.reminder_date IS NOT NULL AND mom_actions.reminder_date <= ?", now).
		Order("mom_actions.reminder_date asc").
		Find(&actions).Error
	return actions, err
}

func (g *GormStore) ListActionsWithDeadlines(ctx context.Context) ([]*model.MomAction, error) {
	var actions []*model.MomAction
	err := g.db.WithContext(ctx).
		Joins("JOIN moms ON moms.id = mom_actions.mom_id AND moms.deleted_at IS NULL").
		Where("mom_actions.status = ? AND mom_actions.deadline IS NOT NULL", model.ActionStatusOpen).
		Order("mom_actions.deadline asc").
		Find(&actions).Error
	return actions, err
}

func (g *GormStore) MarkReminderNotified(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Model(&model.MomAction{}).Where("id = ?", id).
		Update("reminder_notified", true).Error
}

// drafts

func (g *GormStore) CreateDraft(ctx context.Context, draft *model.MomDraft) error {
	return g.db.WithContext(ctx).Create(draft).Error
}

func (g *GormStore) GetDraft(ctx context.Context, id string) (*model.MomDraft, error) {
	var draft model.MomDraft
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (g *GormStore) MaxDraftVersion(ctx context.Context, momID string) (int, error) {
	var version sql.NullInt64
	// soft-deleted drafts still reserve their version number
	err := g.db.WithContext(ctx).Model(&model.MomDraft{}).Unscoped().
		Where("mom_id = ?", momID).
		Select("MAX(version)").
		Scan(&version).Error
	if err != nil || !version.Valid {
		return 0, err
	}
	return int(version.Int64), nil
}

func (g *GormStore) UpdateDraftFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&model.MomDraft{}).Where("id = ?", id).Updates(fields).Error
}

func (g *GormStore) SoftDeleteDraft(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MomDraft{}).Error
}

func (g *GormStore) ListDraftsByMom(ctx context.Context, momID string) ([]*model.MomDraft, error) {
	var drafts []*model.MomDraft
	err := g.db.WithContext(ctx).Where("mom_id = ?", momID).Order("version desc").Find(&drafts).Error
	return drafts, err
}

func (g *GormStore) GetLatestDraft(ctx context.Context, momID string) (*model.MomDraft, error) {
	var draft model.MomDraft
	err := g.db.WithContext(ctx).Where("mom_id = ?", momID).Order("version desc").First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// history

func (g *GormStore) AppendHistory(ctx context.Context, entry *model.MomHistory) error {
	return g.db.WithContext(ctx).Create(entry).Error
}

func (g *GormStore) ListHistory(ctx context.Context, momID string) ([]*model.MomHistory, error) {
	var entries []*model.MomHistory
	err := g.db.WithContext(ctx).Where("mom_id = ?", momID).Order("created_at asc").Order("id asc").Find(&entries).Error
	return entries, err
}

// links

func (g *GormStore) CreateTopicLink(ctx context.Context, link *model.MomTopicLink) error {
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) DeleteTopicLink(ctx context.Context, momID, topicID string) (bool, error) {
	res := g.db.WithContext(ctx).Where("mom_id = ? AND topic_id = ?", momID, topicID).Delete(&model.MomTopicLink{})
	return res.RowsAffected > 0, res.Error
}

func (g *GormStore) TopicLinkExists(ctx context.Context, momID, topicID string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.MomTopicLink{}).
		Where("mom_id = ? AND topic_id = ?", momID, topicID).Count(&count).Error
	return count > 0, err
}

func (g *GormStore) CountTopicLinks(ctx context.Context, momID string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.MomTopicLink{}).Where("mom_id = ?", momID).Count(&count).Error
	return count, err
}

func (g *GormStore) ListTopicLinks(ctx context.Context, momID string) ([]*model.LinkedEntity, error) {
	var links []*model.MomTopicLink
	if err := g.db.WithContext(ctx).Where("mom_id = ?", momID).Order("created_at asc").Find(&links).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.TopicID)
	}

	var topics []*model.Topic
	if len(ids) > 0 {
		if err := g.db.WithContext(ctx).Unscoped().Where("id IN (?)", ids).Find(&topics).Error; err != nil {
			return nil, err
		}
	}

	byID := make(map[string]*model.Topic, len(topics))
	for _, topic := range topics {
		byID[topic.ID] = topic
	}

	out := make([]*model.LinkedEntity, 0, len(links))
	for _, link := range links {
		entity := &model.LinkedEntity{
			LinkID:    link.ID,
			TargetID:  link.TopicID,
			CreatedBy: link.CreatedBy,
			CreatedAt: link.CreatedAt,
		}
		if topic, ok := byID[link.TopicID]; ok && !topic.DeletedAt.Valid {
			entity.Title = topic.Title
		} else {
			if topic, ok := byID[link.TopicID]; ok {
				entity.Title = topic.Title
			}
			entity.DeletedReason = "topic_deleted"
		}
		out = append(out, entity)
	}
	return out, nil
}

func (g *GormStore) CreateRecordLink(ctx context.Context, link *model.MomRecordLink) error {
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) DeleteRecordLink(ctx context.Context, momID, recordID string) (bool, error) {
	res := g.db.WithContext(ctx).Where("mom_id = ? AND record_id = ?", momID, recordID).Delete(&model.MomRecordLink{})
	return res.RowsAffected > 0, res.Error
}

func (g *GormStore) RecordLinkExists(ctx context.Context, momID, recordID string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.MomRecordLink{}).
		Where("mom_id = ? AND record_id = ?", momID, recordID).Count(&count).Error
	return count > 0, err
}

func (g *GormStore) ListRecordLinks(ctx context.Context, momID string) ([]*model.LinkedEntity, error) {
	var links []*model.MomRecordLink
	if err := g.db.WithContext(ctx).Where("mom_id = ?", momID).Order("created_at asc").Find(&links).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.RecordID)
	}

	var records []*model.Record
	if len(ids) > 0 {
		if err := g.db.WithContext(ctx).Unscoped().Where("id IN (?)", ids).Find(&records).Error; err != nil {
			return nil, err
		}
	}

	byID := make(map[string]*model.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}

	out := make([]*model.LinkedEntity, 0, len(links))
	for _, link := range links {
		entity := &model.LinkedEntity{
			LinkID:    link.ID,
			TargetID:  link.RecordID,
			CreatedBy: link.CreatedBy,
			CreatedAt: link.CreatedAt,
		}
		if record, ok := byID[link.RecordID]; ok && !record.DeletedAt.Valid {
			entity.Title = record.Title
		} else {
			if record, ok := byID[link.RecordID]; ok {
				entity.Title = record.Title
			}
			entity.DeletedReason = "record_deleted"
		}
		out = append(out, entity)
	}
	return out, nil
}

func (g *GormStore) CreateLetterLink(ctx context.Context, link *model.MomLetterLink) error {
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) DeleteLetterLink(ctx context.Context, momID, letterID string) (bool, error) {
	res := g.db.WithContext(ctx).Where("mom_id = ? AND letter_id = ?", momID, letterID).Delete(&model.MomLetterLink{})
	return res.RowsAffected > 0, res.Error
}

func (g *GormStore) LetterLinkExists(ctx context.Context, momID, letterID string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.MomLetterLink{}).
		Where("mom_id = ? AND letter_id = ?", momID, letterID).Count(&count).Error
	return count > 0, err
}

func (g *GormStore) ListLetterLinks(ctx context.Context, momID string) ([]*model.LinkedEntity, error) {
	var links []*model.MomLetterLink
	if err := g.db.WithContext(ctx).Where("mom_id = ?", momID).Order("created_at asc").Find(&links).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.LetterID)
	}

	var letters []*model.Letter
	if len(ids) > 0 {
		if err := g.db.WithContext(ctx).Unscoped().Where("id IN (?)", ids).Find(&letters).Error; err != nil {
			return nil, err
		}
	}

	byID := make(map[string]*model.Letter, len(letters))
	for _, letter := range letters {
		byID[letter.ID] = letter
	}

	out := make([]*model.LinkedEntity, 0, len(links))
	for _, link := range links {
		entity := &model.LinkedEntity{
			LinkID:    link.ID,
			TargetID:  link.LetterID,
			CreatedBy: link.CreatedBy,
			CreatedAt: link.CreatedAt,
		}
		if letter, ok := byID[link.LetterID]; ok && !letter.DeletedAt.Valid {
			entity.Title = letter.Subject
		} else {
			if letter, ok := byID[link.LetterID]; ok {
				entity.Title = letter.Subject
			}
			entity.DeletedReason = "letter_deleted"
		}
		out = append(out, entity)
	}
	return out, nil
}

// siblings

func (g *GormStore) LetterExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Letter{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (g *GormStore) GetUserDisplayName(ctx context.Context, id string) (string, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return "", err
	}
	return user.DisplayName, nil
}

func (g *GormStore) ListTopicTitles(ctx context.Context, ids []string) (map[string]string, error) {
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	var topics []*model.Topic
	if err := g.db.WithContext(ctx).Unscoped().Where("id IN (?)", ids).Find(&topics).Error; err != nil {
		return nil, err
	}
	for _, topic := range topics {
		titles[topic.ID] = topic.Title
	}
	return titles, nil
}
