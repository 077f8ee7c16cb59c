package ui

import (
	"strings"
	"testing"
	"time"

	"dayssince/internal/duration"
	"dayssince/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

func sampleInputs() []storage.EventInput {
	return []storage.EventInput{
		{Name: "Started job", Date: duration.NewDate(2023, time.January, 10)},
		{Name: "Dentist", Date: duration.NewDate(2024, time.January, 1), ShowNextDueDate: true, DueDuration: 60},
		{Name: "Moved in", Date: duration.NewDate(2020, time.March, 15), ShowAnniversary: true},
	}
}

func TestApp_GridColumns(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()...)
	app := newTestApp(t, store, 100)

	tests := []struct {
		width int
		want  int
	}{
		{40, 1},
		{80, 2},
		{100, 2},
		{120, 3},
		{200, 3},
	}
	for _, tt := range tests {
		app.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
		if got := app.grid.Columns(); got != tt.want {
			t.Errorf("width %d: Columns() = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestApp_RendersCards(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()...)
	app := newTestApp(t, store, 200)

	view := app.View()
	for _, want := range []string{
		"dayssince",
		"3 events",
		"Filter: All",
		"Fri Mar 15, 2024",
		"Started job",
		"since 2023-01-10",
		"430 days since",
		"0 days until anniversary",
		"-14 days until next due date (overdue)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
}

func TestApp_ToggleFormat(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()[0])
	app := newTestApp(t, store, 100)

	pressAndRun(t, app, "t")

	if !store.Preferences().DetailedDuration {
		t.Error("detailed format not persisted")
	}
	if view := app.View(); !strings.Contains(view, "1 years, 2 months, 5 days since") {
		t.Errorf("View() missing detailed duration\n%s", view)
	}

	pressAndRun(t, app, "t")
	if view := app.View(); !strings.Contains(view, "430 days since") {
		t.Errorf("View() missing raw duration after toggling back\n%s", view)
	}
}

func TestApp_ToggleTheme(t *testing.T) {
	store, _ := createTestStore(t)
	app := newTestApp(t, store, 100)

	if app.styles.Dark {
		t.Fatal("new store should start in light mode")
	}
	pressAndRun(t, app, "D")

	if !app.styles.Dark || !store.Preferences().DarkMode {
		t.Errorf("Dark = %v, stored = %v, want both true", app.styles.Dark, store.Preferences().DarkMode)
	}
	if app.grid.styles != app.styles || app.helpOverlay.styles != app.styles {
		t.Error("components should share the app styles")
	}
}

func TestApp_WelcomeOnFirstRun(t *testing.T) {
	setupTest(t)
	store, _ := createTestStore(t)
	app := NewApp(store, nil)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	if view := app.View(); !strings.Contains(view, "Welcome to dayssince") {
		t.Fatalf("View() missing welcome\n%s", view)
	}

	press(app, "x")
	if view := app.View(); !strings.Contains(view, "No events yet") {
		t.Errorf("View() after dismiss missing empty state\n%s", view)
	}
}

func TestApp_NoWelcomeWithEvents(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()[0])
	app := NewApp(store, nil)
	if app.showWelcome {
		t.Error("welcome should only show on an empty store")
	}
}

func TestApp_AddEvent(t *testing.T) {
	store, _ := createTestStore(t)
	app := newTestApp(t, store, 100)

	press(app, "a")
	if app.form == nil {
		t.Fatal("form not opened")
	}
	if got := app.form.date.Value(); got != "2024-03-15" {
		t.Errorf("default date = %q, want today", got)
	}

	press(app, "Dentist")
	press(app, "tab")
	press(app, "tab") // anniversary
	press(app, "tab") // due
	press(app, " ")
	press(app, "tab") // due days
	press(app, "180")
	pressAndRun(t, app, "enter")

	if app.form != nil {
		t.Fatalf("form still open: %s", app.form.err)
	}
	events := store.Events()
	if len(events) != 1 {
		t.Fatalf("len(Events()) = %d, want 1", len(events))
	}
	want := storage.EventInput{Name: "Dentist", Date: testToday, ShowNextDueDate: true, DueDuration: 180}
	if events[0].Input() != want {
		t.Errorf("event = %+v, want %+v", events[0].Input(), want)
	}
	if !strings.Contains(app.status, "Added: Dentist") {
		t.Errorf("status = %q", app.status)
	}
	if sel, ok := app.grid.Selected(); !ok || sel.ID != events[0].ID {
		t.Errorf("new event not selected")
	}

	// Undo removes it again.
	pressAndRun(t, app, "ctrl+z")
	if n := len(store.Events()); n != 0 {
		t.Errorf("len(Events()) after undo = %d, want 0", n)
	}
}

func TestApp_FormValidation(t *testing.T) {
	store, _ := createTestStore(t)
	app := newTestApp(t, store, 100)

	press(app, "a")
	press(app, "enter")
	if app.form == nil {
		t.Fatal("form closed on empty name")
	}
	if view := app.View(); !strings.Contains(view, "name is required") {
		t.Errorf("View() missing inline error\n%s", view)
	}

	press(app, "Trip")
	app.form.date.SetValue("2023-02-30")
	press(app, "enter")
	if !strings.Contains(app.form.err, `invalid date "2023-02-30"`) {
		t.Errorf("form error = %q", app.form.err)
	}

	press(app, "esc")
	if app.form != nil {
		t.Error("esc should close the form")
	}
	if n := len(store.Events()); n != 0 {
		t.Errorf("len(Events()) = %d, want 0", n)
	}
}

func TestApp_EditUndoRedo(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()...)
	app := newTestApp(t, store, 100)
	id := store.Events()[0].ID

	press(app, "e")
	if app.form == nil {
		t.Fatal("form not opened")
	}
	if got := app.form.name.Value(); got != "Started job" {
		t.Errorf("form name = %q", got)
	}
	app.form.name.SetValue("Started new job")
	pressAndRun(t, app, "enter")

	if ev, _ := store.Event(id); ev.Name != "Started new job" {
		t.Fatalf("name after edit = %q", ev.Name)
	}

	pressAndRun(t, app, "ctrl+z")
	if ev, _ := store.Event(id); ev.Name != "Started job" {
		t.Errorf("name after undo = %q", ev.Name)
	}
	if !strings.Contains(app.status, "Undid: Edited") {
		t.Errorf("status = %q", app.status)
	}

	pressAndRun(t, app, "ctrl+y")
	if ev, _ := store.Event(id); ev.Name != "Started new job" {
		t.Errorf("name after redo = %q", ev.Name)
	}
}

func TestApp_RemoveWithConfirm(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()...)
	app := newTestApp(t, store, 100)
	removed := store.Events()[0]

	press(app, "x")
	if view := app.View(); !strings.Contains(view, "Remove event?") || !strings.Contains(view, "Started job") {
		t.Fatalf("View() missing confirmation\n%s", view)
	}
	press(app, "n")
	if n := len(store.Events()); n != 3 {
		t.Errorf("len(Events()) after cancel = %d, want 3", n)
	}

	press(app, "x")
	pressAndRun(t, app, "y")
	if n := len(store.Events()); n != 2 {
		t.Fatalf("len(Events()) after remove = %d, want 2", n)
	}

	pressAndRun(t, app, "ctrl+z")
	events := store.Events()
	if len(events) != 3 || events[0] != removed {
		t.Errorf("Events() after undo = %+v, want %+v first", events, removed)
	}
}

func TestApp_RemoveWithoutConfirm(t *testing.T) {
	setupTest(t)
	store, _ := createTestStore(t, sampleInputs()...)
	cfg := DefaultAppConfig()
	cfg.ConfirmDeletions = false
	cfg.ShowOnboarding = false
	app := NewApp(store, cfg)
	runCmd(t, app, loadEventsCmd(store))

	pressAndRun(t, app, "x")
	if app.confirmDel != nil {
		t.Error("confirmation shown although disabled")
	}
	if n := len(store.Events()); n != 2 {
		t.Errorf("len(Events()) = %d, want 2", n)
	}
}

func TestApp_ResetToToday(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()...)
	app := newTestApp(t, store, 100)
	press(app, "right")
	ev, _ := app.grid.Selected()

	pressAndRun(t, app, "r")
	if got, _ := store.Event(ev.ID); got.Date != testToday {
		t.Errorf("date after reset = %v, want %v", got.Date, testToday)
	}

	pressAndRun(t, app, "u")
	if got, _ := store.Event(ev.ID); got.Date != ev.Date {
		t.Errorf("date after undo = %v, want %v", got.Date, ev.Date)
	}
}

func TestApp_SearchAndFilter(t *testing.T) {
	store, _ := createTestStore(t, sampleInputs()...)
	app := newTestApp(t, store, 100)

	press(app, "/")
	if !app.searching {
		t.Fatal("search not focused")
	}
	press(app, "DEN")
	if n := app.grid.Len(); n != 1 {
		t.Errorf("grid.Len() while searching = %d, want 1", n)
	}
	if view := app.View(); !strings.Contains(view, "1 of 3 events") {
		t.Errorf("View() missing match count\n%s", view)
	}

	press(app, "enter")
	if app.searching || app.grid.Len() != 1 {
		t.Errorf("enter should keep the query: searching=%v len=%d", app.searching, app.grid.Len())
	}
	press(app, "esc")
	if n := app.grid.Len(); n != 3 {
		t.Errorf("grid.Len() after clearing = %d, want 3", n)
	}

	press(app, "f")
	if app.filter != storage.FilterAnniversary || app.grid.Len() != 1 {
		t.Errorf("filter = %v len = %d, want anniversary with 1", app.filter, app.grid.Len())
	}
	if view := app.View(); !strings.Contains(view, "Filter: Anniversaries") {
		t.Errorf("View() missing filter label\n%s", view)
	}

	press(app, "f")
	press(app, "f")
	if app.filter != storage.FilterNeither || app.grid.Len() != 1 {
		t.Errorf("filter = %v len = %d, want neither with 1", app.filter, app.grid.Len())
	}

	press(app, "f")
	press(app, "/")
	press(app, "zzz")
	if view := app.View(); !strings.Contains(view, "No events match.") {
		t.Errorf("View() missing no-match message\n%s", view)
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	store, _ := createTestStore(t)
	app := newTestApp(t, store, 100)

	press(app, "?")
	if view := app.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("View() missing help\n%s", view)
	}
	press(app, "a")
	if app.form != nil {
		t.Error("keys should not reach the grid while help is open")
	}
	press(app, "esc")
	if app.showHelp {
		t.Error("esc should close help")
	}
}

func TestApp_Quit(t *testing.T) {
	store, _ := createTestStore(t)
	app := newTestApp(t, store, 100)

	if cmd := press(app, "q"); cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if !app.quitting {
		t.Error("quitting not set")
	}
}

func TestApp_TickRollsOverToday(t *testing.T) {
	store, clock := createTestStore(t, sampleInputs()[0])
	app := newTestApp(t, store, 100)

	clock.now = clock.now.Add(24 * time.Hour)
	app.Update(tickMsg(time.Now()))

	if app.today != testToday.AddDays(1) {
		t.Errorf("today = %v, want %v", app.today, testToday.AddDays(1))
	}
	if view := app.View(); !strings.Contains(view, "431 days since") {
		t.Errorf("View() not recomputed\n%s", view)
	}
}

func TestApp_StatusExpires(t *testing.T) {
	store, _ := createTestStore(t)
	app := newTestApp(t, store, 100)

	app.SetStatus("hello", false)
	app.Update(tickMsg(time.Now()))
	if app.status != "hello" {
		t.Error("status cleared too early")
	}
	app.Update(tickMsg(time.Now().Add(time.Minute)))
	if app.status != "" {
		t.Errorf("status = %q, want cleared", app.status)
	}
}
