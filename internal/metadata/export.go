// Package metadata writes the per-Mom sidecar descriptor. The sidecar is a
// denormalized, eventually-consistent export for external inspection and
// backup tooling, never the source of truth.
package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/model"
)

const sidecarName = "metadata.json"

type ActionSnapshot struct {
	Description      string     `json:"description"`
	ResponsibleParty string     `json:"responsible_party,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Status           string     `json:"status"`
}

type Snapshot struct {
	MomID       string           `json:"mom_id,omitempty"`
	Title       string           `json:"title"`
	Subject     string           `json:"subject,omitempty"`
	MeetingDate time.Time        `json:"meeting_date"`
	Location    string           `json:"location,omitempty"`
	Status      string           `json:"status"`
	Creator     string           `json:"creator"`
	CreatedAt   time.Time        `json:"created_at"`
	Topics      []string         `json:"topics"`
	Actions     []ActionSnapshot `json:"actions"`
	ExportedAt  time.Time        `json:"exported_at"`
}

type Exporter struct {
	tree *fsutil.Tree
}

func NewExporter(tree *fsutil.Tree) *Exporter {
	return &Exporter{tree: tree}
}

// Write serializes the Mom's current state to
// <dataRoot>/mom/<storagePath>/metadata.json, replacing any previous sidecar.
func (e *Exporter) Write(mom *model.Mom, locationName string, topics []string, actions []*model.MomAction) error {
	snapshot := Snapshot{
		Title:       mom.Title,
		Subject:     mom.Subject,
		MeetingDate: mom.MeetingDate,
		Location:    locationName,
		Status:      mom.Status,
		Creator:     mom.CreatedBy,
		CreatedAt:   mom.CreatedAt,
		Topics:      topics,
		Actions:     make([]ActionSnapshot, 0, len(actions)),
		ExportedAt:  time.Now().UTC(),
	}
	if mom.MomNumber != nil {
		snapshot.MomID = *mom.MomNumber
	}
	if snapshot.Topics == nil {
		snapshot.Topics = []string{}
	}
	for _, action := range actions {
		snapshot.Actions = append(snapshot.Actions, ActionSnapshot{
			Description:      action.Description,
			ResponsibleParty: action.ResponsibleParty,
			Deadline:         action.Deadline,
			Status:           action.Status,
		})
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	dir := e.tree.MomDir(mom.StoragePath)
	if err := fsutil.EnsureDirectory(dir); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, sidecarName), data, 0o644)
}

// Path returns the sidecar location for a storage path.
func (e *Exporter) Path(storagePath string) string {
	return filepath.Join(e.tree.MomDir(storagePath), sidecarName)
}
