package ui

import (
	"testing"
	"time"

	"dayssince/internal/config"
	"dayssince/internal/duration"
	"dayssince/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testToday is the date every test store reports as today.
var testToday = duration.NewDate(2024, time.March, 15)

// setupTest disables colors so rendered output is plain text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// testClock is a settable clock for stores under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// createTestStore returns an in-memory store whose clock reads
// 2024-03-15 10:30 local time.
func createTestStore(t *testing.T, inputs ...storage.EventInput) (*storage.Store, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)}
	store, err := storage.Open(storage.NewMemoryBackend(), storage.WithNow(clock.Now))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	for _, in := range inputs {
		if _, err := store.AddEvent(in); err != nil {
			t.Fatalf("failed to add %q: %v", in.Name, err)
		}
		clock.now = clock.now.Add(time.Millisecond)
	}
	return store, clock
}

// createTestStyles creates default dark styles.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{}, true)
}

// newTestApp builds an app over store, sized to width x 40, with events
// loaded and onboarding off.
func newTestApp(t *testing.T, store *storage.Store, width int) *App {
	t.Helper()
	setupTest(t)

	cfg := DefaultAppConfig()
	cfg.ShowOnboarding = false
	app := NewApp(store, cfg)
	app.Update(tea.WindowSizeMsg{Width: width, Height: 40})
	runCmd(t, app, loadEventsCmd(store))
	return app
}

// isAppMsg reports whether msg is produced by one of the store or undo
// commands. Widget messages such as cursor blinks are not followed.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case eventsLoadedMsg, eventAddedMsg, eventUpdatedMsg, eventResetMsg, eventRemovedMsg,
		themeToggledMsg, formatToggledMsg, undoResultMsg, redoResultMsg:
		return true
	}
	return false
}

// runCmd executes cmd and feeds its message back into the app, following
// the chain of store commands it triggers.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if !isAppMsg(msg) {
			return
		}
		_, cmd = app.Update(msg)
	}
}

// press sends a key to the app and returns the resulting command without
// running it.
func press(app *App, k string) tea.Cmd {
	_, cmd := app.Update(keyMsg(k))
	return cmd
}

// pressAndRun sends a key and runs the store commands it produces.
func pressAndRun(t *testing.T, app *App, k string) {
	t.Helper()
	runCmd(t, app, press(app, k))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
