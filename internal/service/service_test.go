package service

import (
	"github.com/archivedesk/minutes/internal/audit"
	"github.com/archivedesk/minutes/internal/cache"
	"github.com/archivedesk/minutes/internal/compress"
	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/metadata"
	"github.com/archivedesk/minutes/internal/store"
	"github.com/archivedesk/minutes/internal/tester"
)

func setupServices() (*MomService, *LocationService, store.Store) {
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	tree := fsutil.NewTree(tester.DataRoot())
	auditor := audit.NewLogger(tester.TestDB())
	stats := NewStatsService(st, cache.NewMemory())
	moms := NewMomService(st, tree, metadata.NewExporter(tree), auditor, compress.Nop{}, stats)
	locations := NewLocationService(st, auditor)

	return moms, locations, st
}
