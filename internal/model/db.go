package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&MomLocation{},
		&Mom{},
		&MomAction{},
		&MomDraft{},
		&MomHistory{},
		&MomTopicLink{},
		&MomRecordLink{},
		&MomLetterLink{},
		&AuditLog{},
		&Topic{},
		&Record{},
		&Letter{},
		&User{},
	)
}
