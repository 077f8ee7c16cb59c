// Package ui provides the terminal user interface for dayssince.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text and user customization.
package ui

import (
	"strings"

	"dayssince/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys
// =============================================================================

// GlobalKeyMap defines keys available whenever no input has focus.
type GlobalKeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Search       key.Binding
	Filter       key.Binding
	ToggleFormat key.Binding
	ToggleTheme  key.Binding
	Undo         key.Binding
	Redo         key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Search, "/")...),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Filter, "f")...),
			key.WithHelp("f", "filter"),
		),
		ToggleFormat: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleFormat, "t")...),
			key.WithHelp("t", "format"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTheme, "D")...),
			key.WithHelp("D", "theme"),
		),
		Undo: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Undo, "ctrl+z", "u")...),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Redo, "ctrl+y")...),
			key.WithHelp("ctrl+y", "redo"),
		),
	}
}

// =============================================================================
// Navigation Keys
// =============================================================================

// NavigationKeyMap defines keys for moving between cards in the grid.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Left, "h", "left")...),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Right, "l", "right")...),
			key.WithHelp("l/→", "right"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g", "home")...),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G", "end")...),
			key.WithHelp("G", "last"),
		),
	}
}

// =============================================================================
// Event Keys
// =============================================================================

// EventKeyMap defines keys acting on events in the grid.
type EventKeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Reset  key.Binding
	Remove key.Binding
	NavigationKeyMap
}

// DefaultEventKeyMap returns the default event key bindings.
func DefaultEventKeyMap() EventKeyMap {
	return NewEventKeyMap(&config.KeysConfig{})
}

// NewEventKeyMap creates event key bindings from config.
func NewEventKeyMap(cfg *config.KeysConfig) EventKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return EventKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Edit, "e", "enter")...),
			key.WithHelp("e", "edit"),
		),
		Reset: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Reset, "r")...),
			key.WithHelp("r", "reset to today"),
		),
		Remove: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Remove, "x", "delete")...),
			key.WithHelp("x", "remove"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp implements help.KeyMap.
func (k EventKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Reset, k.Remove}
}

// FullHelp implements help.KeyMap.
func (k EventKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Reset, k.Remove},
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
	}
}

// =============================================================================
// Input Keys
// =============================================================================

// InputKeyMap defines keys for the search box and the event form.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Toggle  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
