// Package ui provides the terminal user interface for dayssince.
// This file contains the App model, which owns the card grid, the search
// box, the event form and the overlays, and routes messages between them.
package ui

import (
	"fmt"
	"strings"
	"time"

	"dayssince/internal/config"
	"dayssince/internal/duration"
	"dayssince/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	Theme            *config.ThemeConfig
	ConfirmDeletions bool
	ShowOnboarding   bool
	// ColumnWidth is the minimum card width; the grid uses as many
	// columns (up to 3) as fit.
	ColumnWidth int
}

// DefaultAppConfig returns the behavior of an unconfigured install.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Keys:             &config.KeysConfig{},
		Theme:            &config.ThemeConfig{},
		ConfirmDeletions: true,
		ShowOnboarding:   true,
		ColumnWidth:      36,
	}
}

// App is the main application model.
type App struct {
	store       *storage.Store
	styles      *Styles
	config      *AppConfig
	grid        *EventGrid
	form        *EventForm
	search      textinput.Model
	searching   bool
	filter      storage.Filter
	events      []storage.Event
	prefs       storage.Preferences
	today       duration.Date
	helpOverlay *HelpOverlay
	undoManager *UndoManager
	undoBusy    bool
	// pendingSelect is an event id to select once it has been loaded.
	pendingSelect int64
	confirmDel    *confirmDeleteState
	showHelp      bool
	showWelcome   bool
	width         int
	height        int
	status        string
	statusErr     bool
	statusUntil   time.Time
	quitting      bool

	keys      GlobalKeyMap
	eventKeys EventKeyMap
	inputKeys InputKeyMap
	helpKeys  HelpKeyMap
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates the application model. Events are read in Init.
func NewApp(store *storage.Store, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = DefaultAppConfig()
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Theme == nil {
		cfg.Theme = &config.ThemeConfig{}
	}

	prefs := store.Preferences()
	styles := NewStylesFromTheme(cfg.Theme, prefs.DarkMode)
	eventKeys := NewEventKeyMap(cfg.Keys)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search by name"
	search.CharLimit = maxNameLength

	return &App{
		store:       store,
		styles:      styles,
		config:      cfg,
		grid:        NewEventGrid(styles, eventKeys, cfg.ColumnWidth),
		search:      search,
		filter:      storage.FilterAll,
		prefs:       prefs,
		today:       store.Today(),
		helpOverlay: NewHelpOverlay(styles),
		undoManager: NewUndoManager(historyLimit),
		showWelcome: cfg.ShowOnboarding && len(store.Events()) == 0,
		keys:        NewGlobalKeyMap(cfg.Keys),
		eventKeys:   eventKeys,
		inputKeys:   NewInputKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}
}

// tickMsg is sent periodically to expire status messages and roll "today"
// over at midnight.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init loads events and starts the tick.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), loadEventsCmd(a.store))
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Load: "+msg.err.Error(), true)
			return a, nil
		}
		a.events = msg.events
		a.prefs = msg.prefs
		if a.styles.Dark != msg.prefs.DarkMode {
			a.applyTheme(msg.prefs.DarkMode)
		}
		a.refresh()
		return a, nil

	case eventAddedMsg:
		if msg.err != nil {
			return a, a.formError("Add", msg.err)
		}
		a.form = nil
		a.undoManager.Push(NewAddEventAction(a.store, *msg.event))
		a.SetStatus("Added: "+truncateText(msg.event.Name, 30), false)
		a.pendingSelect = msg.event.ID
		return a, loadEventsCmd(a.store)

	case eventUpdatedMsg:
		if msg.err != nil {
			return a, a.formError("Edit", msg.err)
		}
		a.form = nil
		a.undoManager.Push(NewEditEventAction(a.store, msg.before, msg.after))
		a.SetStatus("Saved: "+truncateText(msg.after.Name, 30), false)
		return a, loadEventsCmd(a.store)

	case eventResetMsg:
		if msg.err != nil {
			a.SetStatus("Reset: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewResetEventAction(a.store, msg.before, *msg.after))
		a.SetStatus("Reset to today: "+truncateText(msg.after.Name, 30), false)
		return a, loadEventsCmd(a.store)

	case eventRemovedMsg:
		if msg.err != nil {
			a.SetStatus("Remove: "+msg.err.Error(), true)
			return a, nil
		}
		a.undoManager.Push(NewRemoveEventAction(a.store, *msg.event))
		a.SetStatus("Removed: "+truncateText(msg.event.Name, 30)+" (ctrl+z to undo)", false)
		return a, loadEventsCmd(a.store)

	case themeToggledMsg:
		if msg.err != nil {
			a.SetStatus("Theme: "+msg.err.Error(), true)
			return a, nil
		}
		a.prefs.DarkMode = msg.dark
		a.applyTheme(msg.dark)
		if msg.dark {
			a.SetStatus("Dark mode", false)
		} else {
			a.SetStatus("Light mode", false)
		}
		return a, nil

	case formatToggledMsg:
		if msg.err != nil {
			a.SetStatus("Format: "+msg.err.Error(), true)
			return a, nil
		}
		a.prefs.DetailedDuration = msg.detailed
		if msg.detailed {
			a.SetStatus("Detailed durations", false)
		} else {
			a.SetStatus("Days only", false)
		}
		return a, nil

	case undoResultMsg:
		a.undoBusy = false
		switch {
		case msg.err != nil:
			a.SetStatus("Undo failed: "+msg.err.Error(), true)
		case msg.desc != "":
			a.SetStatus("Undid: "+msg.desc, false)
		default:
			a.SetStatus("Nothing to undo", false)
		}
		return a, loadEventsCmd(a.store)

	case redoResultMsg:
		a.undoBusy = false
		switch {
		case msg.err != nil:
			a.SetStatus("Redo failed: "+msg.err.Error(), true)
		case msg.desc != "":
			a.SetStatus("Redid: "+msg.desc, false)
		default:
			a.SetStatus("Nothing to redo", false)
		}
		return a, loadEventsCmd(a.store)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Time(msg).After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		a.today = a.store.Today()
		return a, tickCmd()

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	// Cursor blink and other widget messages.
	if a.form != nil {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}
	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.showWelcome {
		a.showWelcome = false
		return nil
	}

	if a.confirmDel != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			cmd := a.confirmDel.cmd
			a.confirmDel = nil
			return cmd
		case "n", "N", "esc":
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
		}
		return nil
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return nil
	}

	if a.form != nil {
		return a.handleFormKey(msg)
	}

	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		return a.search.Focus()

	case msg.Type == tea.KeyEsc && a.search.Value() != "":
		a.search.Reset()
		a.refresh()
		return nil

	case key.Matches(msg, a.keys.Filter):
		a.filter = a.filter.Next()
		a.refresh()
		a.SetStatus("Filter: "+a.filter.Label(), false)
		return nil

	case key.Matches(msg, a.keys.ToggleFormat):
		return toggleFormatCmd(a.store)

	case key.Matches(msg, a.keys.ToggleTheme):
		return toggleThemeCmd(a.store)

	case key.Matches(msg, a.keys.Undo):
		if a.undoBusy {
			a.SetStatus("Undo: busy", true)
			return nil
		}
		a.undoBusy = true
		return undoCmd(a.undoManager)

	case key.Matches(msg, a.keys.Redo):
		if a.undoBusy {
			a.SetStatus("Redo: busy", true)
			return nil
		}
		a.undoBusy = true
		return redoCmd(a.undoManager)

	case key.Matches(msg, a.eventKeys.Add):
		a.form = NewEventForm(a.styles, a.inputKeys, a.today)
		a.form.SetWidth(a.formWidth())
		return textinput.Blink
	}

	ev, ok := a.grid.Selected()
	switch {
	case key.Matches(msg, a.eventKeys.Edit):
		if !ok {
			a.SetStatus("No event selected", true)
			return nil
		}
		a.form = EditEventForm(a.styles, a.inputKeys, ev)
		a.form.SetWidth(a.formWidth())
		return textinput.Blink

	case key.Matches(msg, a.eventKeys.Reset):
		if !ok {
			a.SetStatus("No event selected", true)
			return nil
		}
		return resetEventCmd(a.store, ev.ID)

	case key.Matches(msg, a.eventKeys.Remove):
		if !ok {
			a.SetStatus("No event selected", true)
			return nil
		}
		if !a.config.ConfirmDeletions {
			return removeEventCmd(a.store, ev.ID)
		}
		a.confirmDel = &confirmDeleteState{
			title: "Remove event?",
			body:  truncateText(ev.Name, 60),
			cmd:   removeEventCmd(a.store, ev.ID),
		}
		return nil
	}

	a.grid.Update(msg)
	return nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	action, cmd := a.form.Update(msg)
	switch action {
	case formCancel:
		a.form = nil
		return nil
	case formSubmit:
		in, err := a.form.Input()
		if err != nil {
			a.form.SetError(err)
			return nil
		}
		if ev, editing := a.form.Editing(); editing {
			updated := storage.Event{
				ID:              ev.ID,
				Name:            in.Name,
				Date:            in.Date,
				ShowAnniversary: in.ShowAnniversary,
				ShowNextDueDate: in.ShowNextDueDate,
				DueDuration:     in.DueDuration,
			}
			return updateEventCmd(a.store, updated)
		}
		return addEventCmd(a.store, in)
	}
	return cmd
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.inputKeys.Cancel):
		a.searching = false
		a.search.Blur()
		a.search.Reset()
		a.refresh()
		return nil
	case key.Matches(msg, a.inputKeys.Confirm):
		a.searching = false
		a.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.refresh()
	return cmd
}

// formError shows a failed save inline in the form when one is open, or in
// the status bar otherwise.
func (a *App) formError(op string, err error) tea.Cmd {
	if a.form != nil {
		a.form.SetError(err)
		return nil
	}
	a.SetStatus(op+": "+err.Error(), true)
	return nil
}

// refresh applies search and filter to the events and updates the grid.
func (a *App) refresh() {
	visible := storage.FilterEvents(a.events, a.search.Value(), a.filter)
	a.grid.SetEvents(visible)
	if a.pendingSelect != 0 && a.grid.Select(a.pendingSelect) {
		a.pendingSelect = 0
	}
}

// applyTheme rebuilds the styles in place so every component sees the new
// palette.
func (a *App) applyTheme(dark bool) {
	*a.styles = *NewStylesFromTheme(a.config.Theme, dark)
}

func (a *App) formWidth() int {
	if a.width <= 0 {
		return 50
	}
	return min(60, max(30, a.width-4))
}

// updateLayout recalculates component sizes from the terminal size.
func (a *App) updateLayout() {
	a.helpOverlay.SetSize(a.width, a.height)

	// Title, search line and status bar take a row each, plus spacing.
	gridHeight := max(cardHeight, a.height-5)
	a.grid.SetSize(max(20, a.width-2), gridHeight)
	a.search.Width = max(10, a.width-6)

	if a.form != nil {
		a.form.SetWidth(a.formWidth())
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return "\n  See you later!\n\n"
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	if a.form != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.form.View())
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(a.renderSearchLine())
	b.WriteString("\n\n")

	switch {
	case len(a.events) == 0:
		b.WriteString(a.styles.MutedStyle.Render("No events yet. Press a to add one."))
	case a.grid.Len() == 0:
		b.WriteString(a.styles.MutedStyle.Render("No events match."))
	default:
		b.WriteString(a.grid.View(a.today, a.prefs.DetailedDuration))
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())
	return b.String()
}

func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" dayssince ")

	count := fmt.Sprintf("%d events", len(a.events))
	if len(a.events) == 1 {
		count = "1 event"
	}
	if n := a.grid.Len(); n != len(a.events) {
		count = fmt.Sprintf("%d of %s", n, count)
	}
	stats := a.styles.DateStyle.Render(count) + "  " +
		a.styles.FilterStyle.Render("Filter: "+a.filter.Label())

	date := a.styles.DateStyle.Render(a.today.Time(time.Local).Format("Mon Jan 2, 2006"))

	used := lipgloss.Width(title) + 2 + lipgloss.Width(stats) + lipgloss.Width(date)
	spacer := max(2, a.width-used)
	return title + "  " + stats + strings.Repeat(" ", spacer) + date
}

func (a *App) renderSearchLine() string {
	if a.searching || a.search.Value() != "" {
		return a.search.View()
	}
	return a.styles.HelpStyle.Render("/ to search")
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to dayssince"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Track how long it has been since the things that matter.\n"))
	b.WriteString(bodyStyle.Render("Add your first event with 'a'. ? opens help.\n"))
	b.WriteString("\n")
	b.WriteString(a.styles.MutedStyle.Render("Press any key to continue"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(b.String()))
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(a.styles.ColorText).Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(a.styles.HelpStyle.Render("[y/enter] remove    [n/esc] cancel"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(b.String()))
}

func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.searching {
		return a.styles.RenderHelp("enter", "keep", "esc", "clear")
	}

	return a.styles.RenderHelp(
		"a", "add",
		"e", "edit",
		"r", "reset",
		"x", "remove",
		"f", "filter",
		"t", "format",
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program.
func Run(store *storage.Store, cfg *AppConfig) error {
	p := tea.NewProgram(NewApp(store, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
