package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders the keyboard reference.
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay.
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{styles: styles}
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{"Events", [][2]string{
		{"a", "Add event"},
		{"e / Enter", "Edit selected"},
		{"r", "Reset date to today"},
		{"x", "Remove selected"},
		{"ctrl+z / u", "Undo"},
		{"ctrl+y", "Redo"},
	}},
	{"View", [][2]string{
		{"h j k l", "Move between cards"},
		{"g / G", "First / last card"},
		{"/", "Search by name"},
		{"f", "Cycle filter"},
		{"t", "Toggle detailed format"},
		{"D", "Toggle dark mode"},
	}},
	{"Form", [][2]string{
		{"Tab", "Next field"},
		{"Space", "Toggle checkbox"},
		{"Enter", "Save"},
		{"Esc", "Cancel"},
	}},
	{"Global", [][2]string{
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

// View renders the help overlay centered on screen.
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render("dayssince - Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, row := range section.rows {
			b.WriteString(keyStyle.Render(row[0]) + descStyle.Render(row[1]) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(h.styles.MutedStyle.Render("Press ? or Esc to close"))

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(b.String()))
}
