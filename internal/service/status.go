package service

import "github.com/archivedesk/minutes/internal/model"

// StatusEvent drives the Mom state machine. Manual events come from the close
// and reopen operations; derived events are raised after action mutations.
type StatusEvent string

const (
	EventCloseRequested         StatusEvent = "close_requested"
	EventReopenRequested        StatusEvent = "reopen_requested"
	EventAllActionsResolved     StatusEvent = "all_actions_resolved"
	EventResolvedActionReopened StatusEvent = "resolved_action_reopened"
)

type statusKey struct {
	state string
	event StatusEvent
}

type statusTransition struct {
	Next          string
	HistoryAction string
}

var statusTransitions = map[statusKey]statusTransition{
	{model.MomStatusOpen, EventCloseRequested}:           {model.MomStatusClosed, model.HistoryStatusChange},
	{model.MomStatusClosed, EventReopenRequested}:        {model.MomStatusOpen, model.HistoryStatusChange},
	{model.MomStatusOpen, EventAllActionsResolved}:       {model.MomStatusClosed, model.HistoryStatusChange},
	{model.MomStatusClosed, EventResolvedActionReopened}: {model.MomStatusOpen, model.HistoryStatusChange},
}

// nextStatus looks up the transition for (state, event). Derived events that
// do not apply to the current state are simply not taken.
func nextStatus(state string, event StatusEvent) (statusTransition, bool) {
	t, ok := statusTransitions[statusKey{state: state, event: event}]
	return t, ok
}
