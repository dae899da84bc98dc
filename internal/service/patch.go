package service

import (
	"strconv"
	"time"

	"github.com/archivedesk/minutes/internal/model"
)

// Patches model partial updates explicitly: a nil field is absent, a non-nil
// field is a requested value. Diff is pure; it maps a patch onto the current
// row and yields the column assignments plus the history entries for what
// actually changed. Unchanged fields produce neither.

// FieldChange records one scalar edit for the history ledger.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

type MomPatch struct {
	MomNumber   *string    `json:"mom_number"`
	Title       *string    `json:"title"`
	Subject     *string    `json:"subject"`
	MeetingDate *time.Time `json:"meeting_date"`
	LocationID  *string    `json:"location_id"`
}

func (p MomPatch) Diff(mom *model.Mom) ([]FieldChange, map[string]interface{}) {
	var changes []FieldChange
	fields := make(map[string]interface{})

	if p.MomNumber != nil {
		old := ""
		if mom.MomNumber != nil {
			old = *mom.MomNumber
		}
		if *p.MomNumber != old {
			changes = append(changes, FieldChange{Field: "mom_number", Old: old, New: *p.MomNumber})
			if *p.MomNumber == "" {
				fields["mom_number"] = nil
			} else {
				fields["mom_number"] = *p.MomNumber
			}
		}
	}
	if p.Title != nil && *p.Title != mom.Title {
		changes = append(changes, FieldChange{Field: "title", Old: mom.Title, New: *p.Title})
		fields["title"] = *p.Title
	}
	if p.Subject != nil && *p.Subject != mom.Subject {
		changes = append(changes, FieldChange{Field: "subject", Old: mom.Subject, New: *p.Subject})
		fields["subject"] = *p.Subject
	}
	if p.MeetingDate != nil && !p.MeetingDate.Equal(mom.MeetingDate) {
		changes = append(changes, FieldChange{
			Field: "meeting_date",
			Old:   mom.MeetingDate.Format("2006-01-02"),
			New:   p.MeetingDate.Format("2006-01-02"),
		})
		fields["meeting_date"] = *p.MeetingDate
	}
	if p.LocationID != nil {
		old := ""
		if mom.LocationID != nil {
			old = *mom.LocationID
		}
		if *p.LocationID != old {
			changes = append(changes, FieldChange{Field: "location_id", Old: old, New: *p.LocationID})
			if *p.LocationID == "" {
				fields["location_id"] = nil
			} else {
				fields["location_id"] = *p.LocationID
			}
		}
	}

	return changes, fields
}

type ActionPatch struct {
	Description      *string    `json:"description"`
	ResponsibleParty *string    `json:"responsible_party"`
	Deadline         *time.Time `json:"deadline"`
	ReminderDate     *time.Time `json:"reminder_date"`
}

func (p ActionPatch) Diff(action *model.MomAction) ([]FieldChange, map[string]interface{}) {
	var changes []FieldChange
	fields := make(map[string]interface{})

	if p.Description != nil && *p.Description != action.Description {
		changes = append(changes, FieldChange{Field: "description", Old: action.Description, New: *p.Description})
		fields["description"] = *p.Description
	}
	if p.ResponsibleParty != nil && *p.ResponsibleParty != action.ResponsibleParty {
		changes = append(changes, FieldChange{Field: "responsible_party", Old: action.ResponsibleParty, New: *p.ResponsibleParty})
		fields["responsible_party"] = *p.ResponsibleParty
	}
	if p.Deadline != nil && !timeEqual(p.Deadline, action.Deadline) {
		changes = append(changes, FieldChange{Field: "deadline", Old: timeString(action.Deadline), New: timeString(p.Deadline)})
		fields["deadline"] = *p.Deadline
	}
	if p.ReminderDate != nil && !timeEqual(p.ReminderDate, action.ReminderDate) {
		changes = append(changes, FieldChange{Field: "reminder_date", Old: timeString(action.ReminderDate), New: timeString(p.ReminderDate)})
		fields["reminder_date"] = *p.ReminderDate
		// the reminder surface must re-fire for the new date
		fields["reminder_notified"] = false
	}

	return changes, fields
}

type LocationPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

func (p LocationPatch) Diff(loc *model.MomLocation) ([]FieldChange, map[string]interface{}) {
	var changes []FieldChange
	fields := make(map[string]interface{})

	if p.Name != nil && *p.Name != loc.Name {
		changes = append(changes, FieldChange{Field: "name", Old: loc.Name, New: *p.Name})
		fields["name"] = *p.Name
	}
	if p.Description != nil && *p.Description != loc.Description {
		changes = append(changes, FieldChange{Field: "description", Old: loc.Description, New: *p.Description})
		fields["description"] = *p.Description
	}
	if p.SortOrder != nil && *p.SortOrder != loc.SortOrder {
		changes = append(changes, FieldChange{Field: "sort_order", Old: strconv.Itoa(loc.SortOrder), New: strconv.Itoa(*p.SortOrder)})
		fields["sort_order"] = *p.SortOrder
	}

	return changes, fields
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func timeString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
