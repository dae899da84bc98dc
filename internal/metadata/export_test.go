package metadata

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestExporter_Write(t *testing.T) {
	root := t.TempDir()
	tree := fsutil.NewTree(root)
	exporter := NewExporter(tree)

	number := "MOM-7"
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mom := &model.Mom{
		ID:          "id-1",
		MomNumber:   &number,
		Title:       "Budget Review",
		Subject:     "Q1 spend",
		MeetingDate: time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
		Status:      model.MomStatusOpen,
		StoragePath: "2026/02/08/MOM-7_Budget_Review",
		CreatedBy:   "user-1",
	}
	actions := []*model.MomAction{
		{Description: "Send report", ResponsibleParty: "finance", Deadline: &deadline, Status: model.ActionStatusOpen},
	}

	err := exporter.Write(mom, "Conference Room A", []string{"Procurement"}, actions)
	assert.NoError(t, err)

	data, err := os.ReadFile(exporter.Path(mom.StoragePath))
	assert.NoError(t, err)

	var snapshot Snapshot
	assert.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, "MOM-7", snapshot.MomID)
	assert.Equal(t, "Budget Review", snapshot.Title)
	assert.Equal(t, "Conference Room A", snapshot.Location)
	assert.Equal(t, []string{"Procurement"}, snapshot.Topics)
	assert.Len(t, snapshot.Actions, 1)
	assert.Equal(t, "Send report", snapshot.Actions[0].Description)
	assert.False(t, snapshot.ExportedAt.IsZero())
}

func TestExporter_WriteOverwritesPrevious(t *testing.T) {
	root := t.TempDir()
	tree := fsutil.NewTree(root)
	exporter := NewExporter(tree)

	mom := &model.Mom{
		ID:          "id-2",
		Title:       "First",
		MeetingDate: time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
		Status:      model.MomStatusOpen,
		StoragePath: "2026/02/08/id-2_First",
		CreatedBy:   "user-1",
	}

	assert.NoError(t, exporter.Write(mom, "", nil, nil))

	mom.Title = "Renamed"
	mom.Status = model.MomStatusClosed
	assert.NoError(t, exporter.Write(mom, "", nil, nil))

	data, err := os.ReadFile(exporter.Path(mom.StoragePath))
	assert.NoError(t, err)

	var snapshot Snapshot
	assert.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, "Renamed", snapshot.Title)
	assert.Equal(t, model.MomStatusClosed, snapshot.Status)
	assert.Equal(t, []string{}, snapshot.Topics)
	assert.Empty(t, snapshot.Actions)
}
