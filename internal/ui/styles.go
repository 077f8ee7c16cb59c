package ui

import (
	"dayssince/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Default palettes used when the theme leaves a color empty.
var (
	defaultDark  = config.Palette{Background: "#111827", Text: "#F9FAFB"}
	defaultLight = config.Palette{Background: "#F9FAFB", Text: "#111827"}
)

// Styles holds all application styles for one theme mode.
type Styles struct {
	Dark bool

	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Title bar
	TitleStyle  lipgloss.Style
	DateStyle   lipgloss.Style
	FilterStyle lipgloss.Style

	// Cards
	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	CardNameStyle     lipgloss.Style
	CardDateStyle     lipgloss.Style
	ElapsedStyle      lipgloss.Style
	CountdownStyle    lipgloss.Style
	TodayStyle        lipgloss.Style
	OverdueStyle      lipgloss.Style

	// Search and form inputs
	InputPromptStyle lipgloss.Style
	InputLabelStyle  lipgloss.Style
	InputFocusStyle  lipgloss.Style
	FormErrorStyle   lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	MutedStyle  lipgloss.Style
}

// NewStyles creates styles from the config theme for the given mode.
func NewStyles(cfg *config.Config, dark bool) *Styles {
	return NewStylesFromTheme(&cfg.Theme, dark)
}

// NewStylesFromTheme creates styles from a ThemeConfig. Empty colors fall
// back to the defaults for the mode.
func NewStylesFromTheme(theme *config.ThemeConfig, dark bool) *Styles {
	s := &Styles{Dark: dark}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")

	if dark {
		s.ColorBg = colorOrDefault(theme.Dark.Background, defaultDark.Background)
		s.ColorText = colorOrDefault(theme.Dark.Text, defaultDark.Text)
		s.ColorBgLight = lipgloss.Color("#374151")
		s.ColorTextMuted = lipgloss.Color("#9CA3AF")
	} else {
		s.ColorBg = colorOrDefault(theme.Light.Background, defaultLight.Background)
		s.ColorText = colorOrDefault(theme.Light.Text, defaultLight.Text)
		s.ColorBgLight = lipgloss.Color("#E5E7EB")
		s.ColorTextMuted = lipgloss.Color("#4B5563")
	}

	s.initComponentStyles()
	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.FilterStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.CardSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.CardNameStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.CardDateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.ElapsedStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.CountdownStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TodayStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.OverdueStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Width(12)

	s.InputFocusStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true).
		Width(12)

	s.FormErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)
}

// RenderHelp renders "[key] desc" pairs.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
