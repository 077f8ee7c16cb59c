package ui

import (
	"strings"
	"testing"

	"dayssince/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStylesFromTheme(t *testing.T) {
	tests := []struct {
		name     string
		theme    config.ThemeConfig
		dark     bool
		wantBg   lipgloss.Color
		wantText lipgloss.Color
		wantPrim lipgloss.Color
	}{
		{
			name:     "dark defaults",
			dark:     true,
			wantBg:   "#111827",
			wantText: "#F9FAFB",
			wantPrim: "#7C3AED",
		},
		{
			name:     "light defaults",
			wantBg:   "#F9FAFB",
			wantText: "#111827",
			wantPrim: "#7C3AED",
		},
		{
			name: "custom palette",
			theme: config.ThemeConfig{
				Primary: "#FF0000",
				Dark:    config.Palette{Background: "#000000", Text: "#FFFFFF"},
			},
			dark:     true,
			wantBg:   "#000000",
			wantText: "#FFFFFF",
			wantPrim: "#FF0000",
		},
		{
			name: "custom dark palette unused in light mode",
			theme: config.ThemeConfig{
				Dark: config.Palette{Background: "#000000"},
			},
			wantBg:   "#F9FAFB",
			wantText: "#111827",
			wantPrim: "#7C3AED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStylesFromTheme(&tt.theme, tt.dark)
			if s.Dark != tt.dark {
				t.Errorf("Dark = %v, want %v", s.Dark, tt.dark)
			}
			if s.ColorBg != tt.wantBg {
				t.Errorf("ColorBg = %v, want %v", s.ColorBg, tt.wantBg)
			}
			if s.ColorText != tt.wantText {
				t.Errorf("ColorText = %v, want %v", s.ColorText, tt.wantText)
			}
			if s.ColorPrimary != tt.wantPrim {
				t.Errorf("ColorPrimary = %v, want %v", s.ColorPrimary, tt.wantPrim)
			}
		})
	}
}

func TestNewStyles_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Accent = "#123456"

	s := NewStyles(cfg, false)
	if s.ColorAccent != "#123456" {
		t.Errorf("ColorAccent = %v, want #123456", s.ColorAccent)
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	s := createTestStyles()

	got := s.RenderHelp("a", "add", "q", "quit", "dangling")
	want := "[a] add  [q] quit"
	if got != want {
		t.Errorf("RenderHelp() = %q, want %q", got, want)
	}
	if strings.Contains(got, "dangling") {
		t.Error("RenderHelp() rendered an unpaired key")
	}
}
