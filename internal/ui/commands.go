// Package ui provides the terminal user interface for dayssince.
// This file contains tea.Cmd factories that wrap store operations. Each
// command returns a corresponding message type defined in messages.go.
package ui

import (
	"dayssince/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Event Commands
// =============================================================================

// loadEventsCmd returns a command that reads events and preferences.
func loadEventsCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		return eventsLoadedMsg{events: store.Events(), prefs: store.Preferences()}
	}
}

// addEventCmd returns a command that creates a new event.
func addEventCmd(store *storage.Store, in storage.EventInput) tea.Cmd {
	return func() tea.Msg {
		ev, err := store.AddEvent(in)
		return eventAddedMsg{event: ev, err: err}
	}
}

// updateEventCmd returns a command that replaces an event's fields.
// The stored version is captured first for undo.
func updateEventCmd(store *storage.Store, ev storage.Event) tea.Cmd {
	return func() tea.Msg {
		before, err := store.Event(ev.ID)
		if err != nil {
			return eventUpdatedMsg{err: err}
		}
		if err := store.UpdateEvent(ev); err != nil {
			return eventUpdatedMsg{err: err}
		}
		after, _ := store.Event(ev.ID)
		return eventUpdatedMsg{before: before, after: after}
	}
}

// resetEventCmd returns a command that sets an event's date to today.
func resetEventCmd(store *storage.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		before, err := store.Event(id)
		if err != nil {
			return eventResetMsg{err: err}
		}
		after, err := store.ResetToToday(id)
		return eventResetMsg{before: before, after: after, err: err}
	}
}

// removeEventCmd returns a command that removes an event.
func removeEventCmd(store *storage.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		ev, err := store.RemoveEvent(id)
		return eventRemovedMsg{event: ev, err: err}
	}
}

// =============================================================================
// Preference Commands
// =============================================================================

// toggleThemeCmd returns a command that switches dark mode.
func toggleThemeCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		dark, err := store.ToggleDarkMode()
		return themeToggledMsg{dark: dark, err: err}
	}
}

// toggleFormatCmd returns a command that switches the detailed format.
func toggleFormatCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		detailed, err := store.ToggleDetailedDuration()
		return formatToggledMsg{detailed: detailed, err: err}
	}
}

// =============================================================================
// Undo/Redo Commands
// =============================================================================

// undoCmd returns a command that undoes the most recent action.
func undoCmd(m *UndoManager) tea.Cmd {
	return func() tea.Msg {
		desc, err := m.Undo()
		return undoResultMsg{desc: desc, err: err}
	}
}

// redoCmd returns a command that redoes the most recently undone action.
func redoCmd(m *UndoManager) tea.Cmd {
	return func() tea.Msg {
		desc, err := m.Redo()
		return redoResultMsg{desc: desc, err: err}
	}
}
