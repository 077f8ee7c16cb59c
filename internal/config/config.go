// Package config loads the dayssince configuration from the XDG config
// directory (typically ~/.config/dayssince/config.yaml) and fills defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dayssince/internal/fsutil"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const appName = "dayssince"

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.dayssince)
	DataDir string `yaml:"data_dir,omitempty"`

	Storage   StorageConfig  `yaml:"storage,omitempty"`
	Theme     ThemeConfig    `yaml:"theme,omitempty"`
	Keys      KeysConfig     `yaml:"keys,omitempty"`
	UX        UXConfig       `yaml:"ux,omitempty"`
	Reminders ReminderConfig `yaml:"reminders,omitempty"`
	Log       LogConfig      `yaml:"log,omitempty"`
}

// StorageConfig selects where events and preferences are persisted.
type StorageConfig struct {
	// Backend is "json" (one file per slot) or "sqlite"
	Backend string `yaml:"backend,omitempty"`

	// SQLiteFile is the database path, relative to the data directory
	// unless absolute
	SQLiteFile string `yaml:"sqlite_file,omitempty"`
}

// Palette is the background/text pair for one theme mode.
type Palette struct {
	Background string `yaml:"background,omitempty"`
	Text       string `yaml:"text,omitempty"`
}

// ThemeConfig defines color settings. Colors are hex strings.
type ThemeConfig struct {
	Primary string  `yaml:"primary,omitempty"`
	Accent  string  `yaml:"accent,omitempty"`
	Muted   string  `yaml:"muted,omitempty"`
	Light   Palette `yaml:"light,omitempty"`
	Dark    Palette `yaml:"dark,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list, e.g. "q,ctrl+c".
// Empty means the built-in default.
type KeysConfig struct {
	Quit   string `yaml:"quit,omitempty"`   // default: "q,ctrl+c"
	Help   string `yaml:"help,omitempty"`   // default: "?"
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Left   string `yaml:"left,omitempty"`   // default: "h,left"
	Right  string `yaml:"right,omitempty"`  // default: "l,right"
	Top    string `yaml:"top,omitempty"`    // default: "g,home"
	Bottom string `yaml:"bottom,omitempty"` // default: "G,end"

	Add    string `yaml:"add,omitempty"`    // default: "a"
	Edit   string `yaml:"edit,omitempty"`   // default: "e,enter"
	Reset  string `yaml:"reset,omitempty"`  // default: "r"
	Remove string `yaml:"remove,omitempty"` // default: "x,delete"

	Search       string `yaml:"search,omitempty"`        // default: "/"
	Filter       string `yaml:"filter,omitempty"`        // default: "f"
	ToggleFormat string `yaml:"toggle_format,omitempty"` // default: "t"
	ToggleTheme  string `yaml:"toggle_theme,omitempty"`  // default: "D"

	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"

	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions asks before removing an event
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// ShowOnboarding shows the welcome screen when there are no events
	ShowOnboarding bool `yaml:"show_onboarding,omitempty"` // default: true

	// ColumnWidth is the minimum card width used to pick 1, 2 or 3 columns
	ColumnWidth int `yaml:"column_width,omitempty"` // default: 36
}

// ReminderConfig configures the reminder daemon.
type ReminderConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Schedule is a standard 5-field cron spec
	Schedule string `yaml:"schedule,omitempty"` // default: "0 9 * * *"

	// LeadDays notifies this many days ahead of an anniversary or due date
	LeadDays int `yaml:"lead_days,omitempty"` // default: 1

	Sound bool `yaml:"sound,omitempty"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // default: "info"

	// File receives the log while the TUI owns the terminal. Relative to
	// the data directory unless absolute.
	File string `yaml:"file,omitempty"` // default: "dayssince.log"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Backend:    BackendJSON,
			SQLiteFile: "dayssince.db",
		},
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
			Light:   Palette{Background: "#F9FAFB", Text: "#111827"},
			Dark:    Palette{Background: "#111827", Text: "#F9FAFB"},
		},
		UX: UXConfig{
			ConfirmDeletions: true,
			ShowOnboarding:   true,
			ColumnWidth:      36,
		},
		Reminders: ReminderConfig{
			Enabled:  false,
			Schedule: "0 9 * * *",
			LeadDays: 1,
			Sound:    false,
		},
		Log: LogConfig{
			Level: "info",
			File:  "dayssince.log",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the path to the config file, or "" when no home directory
// can be determined.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file, merging it onto defaults.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, merging it onto defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; mergeFromYAML falls back without it

	cfg.mergeFromYAML(&userCfg, &doc)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if _, err := cron.ParseStandard(c.Reminders.Schedule); err != nil {
		return fmt.Errorf("reminders.schedule: %w", err)
	}
	if c.Reminders.LeadDays < 0 {
		return fmt.Errorf("reminders.lead_days must not be negative")
	}
	return nil
}

// mergeNonEmpty applies non-empty strings and positive ints from other.
// Booleans are left to mergeFromYAML.
func (c *Config) mergeNonEmpty(other *Config) {
	setString(&c.DataDir, other.DataDir)

	setString(&c.Storage.Backend, strings.ToLower(strings.TrimSpace(other.Storage.Backend)))
	setString(&c.Storage.SQLiteFile, other.Storage.SQLiteFile)

	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)
	setString(&c.Theme.Light.Background, other.Theme.Light.Background)
	setString(&c.Theme.Light.Text, other.Theme.Light.Text)
	setString(&c.Theme.Dark.Background, other.Theme.Dark.Background)
	setString(&c.Theme.Dark.Text, other.Theme.Dark.Text)

	k, o := &c.Keys, other.Keys
	for dst, src := range map[*string]string{
		&k.Quit: o.Quit, &k.Help: o.Help,
		&k.Up: o.Up, &k.Down: o.Down, &k.Left: o.Left, &k.Right: o.Right,
		&k.Top: o.Top, &k.Bottom: o.Bottom,
		&k.Add: o.Add, &k.Edit: o.Edit, &k.Reset: o.Reset, &k.Remove: o.Remove,
		&k.Search: o.Search, &k.Filter: o.Filter,
		&k.ToggleFormat: o.ToggleFormat, &k.ToggleTheme: o.ToggleTheme,
		&k.Confirm: o.Confirm, &k.Cancel: o.Cancel,
		&k.Undo: o.Undo, &k.Redo: o.Redo,
	} {
		setString(dst, src)
	}

	if other.UX.ColumnWidth > 0 {
		c.UX.ColumnWidth = other.UX.ColumnWidth
	}

	setString(&c.Reminders.Schedule, other.Reminders.Schedule)
	if other.Reminders.LeadDays > 0 {
		c.Reminders.LeadDays = other.Reminders.LeadDays
	}

	setString(&c.Log.Level, other.Log.Level)
	setString(&c.Log.File, other.Log.File)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	if doc == nil || len(doc.Content) == 0 {
		return
	}

	// Booleans and zero ints only apply when the key is present.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "show_onboarding") {
		c.UX.ShowOnboarding = other.UX.ShowOnboarding
	}

	if yamlHasPath(doc, "reminders", "enabled") {
		c.Reminders.Enabled = other.Reminders.Enabled
	}
	if yamlHasPath(doc, "reminders", "sound") {
		c.Reminders.Sound = other.Reminders.Sound
	}
	if yamlHasPath(doc, "reminders", "lead_days") {
		c.Reminders.LeadDays = other.Reminders.LeadDays
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the data directory with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return expandHome(c.DataDir)
}

// SQLitePath returns the resolved database path.
func (c *Config) SQLitePath() string {
	return c.resolve(c.Storage.SQLiteFile)
}

// LogPath returns the resolved log file path.
func (c *Config) LogPath() string {
	return c.resolve(c.Log.File)
}

func (c *Config) resolve(name string) string {
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.GetDataDir(), name)
}

func expandHome(p string) string {
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return p
	}

	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err == nil {
			trimmed := strings.TrimPrefix(p, "~/")
			trimmed = strings.TrimPrefix(trimmed, `~\`)
			return filepath.Join(home, trimmed)
		}
	}
	return p
}
