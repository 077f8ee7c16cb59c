// Package ui provides the terminal user interface for dayssince.
// This file defines message types for store operations run as Bubble Tea
// commands, so writes never block the event loop.
package ui

import (
	"dayssince/internal/storage"
)

// =============================================================================
// Undo/Redo Messages
// =============================================================================

// undoResultMsg is sent when an undo operation completes.
type undoResultMsg struct {
	desc string
	err  error
}

// redoResultMsg is sent when a redo operation completes.
type redoResultMsg struct {
	desc string
	err  error
}

// =============================================================================
// Event Messages
// =============================================================================

// eventsLoadedMsg carries the current events and preferences.
type eventsLoadedMsg struct {
	events []storage.Event
	prefs  storage.Preferences
	err    error
}

// eventAddedMsg is sent when a new event is created.
type eventAddedMsg struct {
	event *storage.Event
	err   error
}

// eventUpdatedMsg is sent when an event is edited. before is kept for undo.
type eventUpdatedMsg struct {
	before storage.Event
	after  storage.Event
	err    error
}

// eventResetMsg is sent when an event's date is reset to today.
type eventResetMsg struct {
	before storage.Event
	after  *storage.Event
	err    error
}

// eventRemovedMsg is sent when an event is removed. event holds the full
// event for restoration on undo.
type eventRemovedMsg struct {
	event *storage.Event
	err   error
}

// =============================================================================
// Preference Messages
// =============================================================================

// themeToggledMsg is sent when dark mode is switched.
type themeToggledMsg struct {
	dark bool
	err  error
}

// formatToggledMsg is sent when the detailed duration format is switched.
type formatToggledMsg struct {
	detailed bool
	err      error
}
