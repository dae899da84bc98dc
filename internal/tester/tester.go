package tester

import (
	"os"

	"github.com/archivedesk/minutes/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
)

// Setup recreates a fresh sqlite database with the full schema under
// ../../.test/. Call once at the top of each test.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"/db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(testPath+"db/minutes.db"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

// DataRoot creates and returns a scratch directory for archive-folder tests.
func DataRoot() string {
	root := testPath + "data"
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		panic(err)
	}
	return root
}

func RemoveDBFile() {
	err := os.RemoveAll(testPath)
	if err != nil {
		panic(err)
	}
}
