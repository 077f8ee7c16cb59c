package ui

import (
	"strings"
	"testing"
)

func TestHelpOverlay_View(t *testing.T) {
	setupTest(t)
	h := NewHelpOverlay(createTestStyles())
	h.SetSize(100, 40)

	view := h.View()
	for _, want := range []string{
		"Keyboard Shortcuts",
		"Events", "View", "Form", "Global",
		"Reset date to today",
		"Toggle detailed format",
		"Press ? or Esc to close",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestHelpOverlay_NarrowTerminal(t *testing.T) {
	setupTest(t)
	h := NewHelpOverlay(createTestStyles())
	h.SetSize(30, 60)

	for _, line := range strings.Split(h.View(), "\n") {
		if w := len([]rune(line)); w > 30 {
			t.Errorf("line is %d wide, want <= 30: %q", w, line)
			break
		}
	}
}
