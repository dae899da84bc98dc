package model

import (
	"time"

	"gorm.io/gorm"
)

// Read models for tables owned by sibling modules. The minutes service only
// reads them, to resolve link titles and actor display names.

type Topic struct {
	ID        string         `gorm:"primaryKey;uuid;not null" json:"id"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}

type Record struct {
	ID        string         `gorm:"primaryKey;uuid;not null" json:"id"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Record) TableName() string {
	return "records"
}

type Letter struct {
	ID        string         `gorm:"primaryKey;uuid;not null" json:"id"`
	Subject   string         `json:"subject"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Letter) TableName() string {
	return "letters"
}

type User struct {
	ID          string    `gorm:"primaryKey;uuid;not null" json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
