// Package ui provides the terminal user interface for dayssince.
// This file implements undo/redo as a command pattern over captured
// copies of the events each operation changed.
package ui

import (
	"sync"

	"dayssince/internal/storage"

	"github.com/mattn/go-runewidth"
)

// historyLimit bounds the undo history; the oldest entry is dropped first.
const historyLimit = 50

// UndoableAction is one reversible change to the event collection.
type UndoableAction struct {
	Description string
	Undo        func() error
	// Redo may be nil, in which case the action is not redoable.
	Redo func() error
}

// UndoManager keeps the undo and redo stacks. Undo and Redo may run on a
// command goroutine while the model reads CanUndo.
type UndoManager struct {
	mu     sync.Mutex
	limit  int
	done   []*UndoableAction
	undone []*UndoableAction
}

// NewUndoManager creates an UndoManager holding up to limit actions.
// A non-positive limit uses the default of 50.
func NewUndoManager(limit int) *UndoManager {
	if limit <= 0 {
		limit = historyLimit
	}
	return &UndoManager{limit: limit}
}

// Push records a new action and clears the redo stack.
func (m *UndoManager) Push(action *UndoableAction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undone = nil
	m.done = append(m.done, action)
	if over := len(m.done) - m.limit; over > 0 {
		m.done = append([]*UndoableAction(nil), m.done[over:]...)
	}
}

// CanUndo reports whether there is anything to undo.
func (m *UndoManager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.done) > 0
}

// CanRedo reports whether there is anything to redo.
func (m *UndoManager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undone) > 0
}

// Len returns the number of undoable actions.
func (m *UndoManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.done)
}

// Undo reverses the most recent action and returns its description, or ""
// when there is nothing to undo. A failed undo stays on the stack.
func (m *UndoManager) Undo() (string, error) {
	action := m.pop(&m.done)
	if action == nil {
		return "", nil
	}
	if err := action.Undo(); err != nil {
		m.push(&m.done, action)
		return "", err
	}
	if action.Redo != nil {
		m.push(&m.undone, action)
	}
	return action.Description, nil
}

// Redo reapplies the most recently undone action and returns its
// description, or "" when there is nothing to redo.
func (m *UndoManager) Redo() (string, error) {
	action := m.pop(&m.undone)
	if action == nil {
		return "", nil
	}
	if err := action.Redo(); err != nil {
		m.push(&m.undone, action)
		return "", err
	}
	m.push(&m.done, action)
	return action.Description, nil
}

// Clear drops all history.
func (m *UndoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done = nil
	m.undone = nil
}

func (m *UndoManager) pop(stack *[]*UndoableAction) *UndoableAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(*stack)
	if n == 0 {
		return nil
	}
	action := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return action
}

func (m *UndoManager) push(stack *[]*UndoableAction, action *UndoableAction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*stack = append(*stack, action)
}

// =============================================================================
// Undoable Action Factories
// =============================================================================

// NewAddEventAction creates an undoable action for an added event.
func NewAddEventAction(store *storage.Store, ev storage.Event) *UndoableAction {
	return &UndoableAction{
		Description: "Added: " + truncateText(ev.Name, 20),
		Undo: func() error {
			_, err := store.RemoveEvent(ev.ID)
			return err
		},
		Redo: func() error {
			return store.RestoreEvent(ev)
		},
	}
}

// NewRemoveEventAction creates an undoable action for event removal.
// The event is captured before removal so it can be restored with its id.
func NewRemoveEventAction(store *storage.Store, ev storage.Event) *UndoableAction {
	return &UndoableAction{
		Description: "Removed: " + truncateText(ev.Name, 20),
		Undo: func() error {
			return store.RestoreEvent(ev)
		},
		Redo: func() error {
			_, err := store.RemoveEvent(ev.ID)
			return err
		},
	}
}

// NewEditEventAction creates an undoable action for an edit.
func NewEditEventAction(store *storage.Store, before, after storage.Event) *UndoableAction {
	return newReplaceAction(store, "Edited: ", before, after)
}

// NewResetEventAction creates an undoable action for a reset to today.
func NewResetEventAction(store *storage.Store, before, after storage.Event) *UndoableAction {
	return newReplaceAction(store, "Reset: ", before, after)
}

func newReplaceAction(store *storage.Store, prefix string, before, after storage.Event) *UndoableAction {
	return &UndoableAction{
		Description: prefix + truncateText(after.Name, 20),
		Undo: func() error {
			return store.UpdateEvent(before)
		},
		Redo: func() error {
			return store.UpdateEvent(after)
		},
	}
}

// truncateText shortens text to maxLen with ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}
