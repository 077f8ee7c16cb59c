package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig points XDG_CONFIG_HOME at a temp dir and writes content as
// the config file.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	dir := filepath.Join(tempDir, "dayssince")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("Storage.Backend = %q, want json", cfg.Storage.Backend)
	}
	if cfg.Reminders.Schedule != "0 9 * * *" {
		t.Errorf("Reminders.Schedule = %q", cfg.Reminders.Schedule)
	}
	if !cfg.UX.ConfirmDeletions || !cfg.UX.ShowOnboarding {
		t.Errorf("UX = %+v, want confirmations and onboarding on", cfg.UX)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme.Primary != "#7C3AED" {
		t.Errorf("Theme.Primary = %q, want #7C3AED", cfg.Theme.Primary)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	writeConfig(t, `
data_dir: /custom/data
storage:
  backend: SQLite
theme:
  primary: "#FF0000"
  dark:
    background: "#000000"
keys:
  add: "n"
reminders:
  schedule: "30 8 * * 1-5"
  lead_days: 3
log:
  level: debug
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", cfg.DataDir)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Theme.Primary = %q, want #FF0000", cfg.Theme.Primary)
	}
	if cfg.Theme.Dark.Background != "#000000" {
		t.Errorf("Theme.Dark.Background = %q", cfg.Theme.Dark.Background)
	}
	if cfg.Theme.Dark.Text != "#F9FAFB" {
		t.Errorf("Theme.Dark.Text = %q, want default", cfg.Theme.Dark.Text)
	}
	if cfg.Theme.Muted != "#6B7280" {
		t.Errorf("Theme.Muted = %q, want #6B7280", cfg.Theme.Muted)
	}
	if cfg.Keys.Add != "n" {
		t.Errorf("Keys.Add = %q, want n", cfg.Keys.Add)
	}
	if cfg.Reminders.Schedule != "30 8 * * 1-5" || cfg.Reminders.LeadDays != 3 {
		t.Errorf("Reminders = %+v", cfg.Reminders)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_MissingBoolKeysDoesNotClobberDefaults(t *testing.T) {
	writeConfig(t, `
theme:
  primary: "#FF0000"
reminders:
  enabled: true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Reminders.Enabled {
		t.Errorf("Reminders.Enabled = %v, want true", cfg.Reminders.Enabled)
	}
	if !cfg.UX.ConfirmDeletions {
		t.Errorf("UX.ConfirmDeletions = %v, want true", cfg.UX.ConfirmDeletions)
	}
	if !cfg.UX.ShowOnboarding {
		t.Errorf("UX.ShowOnboarding = %v, want true", cfg.UX.ShowOnboarding)
	}
	if cfg.Reminders.LeadDays != 1 {
		t.Errorf("Reminders.LeadDays = %d, want 1", cfg.Reminders.LeadDays)
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	writeConfig(t, `
ux:
  confirm_deletions: false
reminders:
  lead_days: 0
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UX.ConfirmDeletions {
		t.Errorf("UX.ConfirmDeletions = %v, want false", cfg.UX.ConfirmDeletions)
	}
	if cfg.Reminders.LeadDays != 0 {
		t.Errorf("Reminders.LeadDays = %d, want 0", cfg.Reminders.LeadDays)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "ux: [", "parse"},
		{"unknown backend", "storage:\n  backend: postgres\n", "storage.backend"},
		{"bad cron", "reminders:\n  schedule: \"every day\"\n", "reminders.schedule"},
		{"negative lead", "reminders:\n  lead_days: -2\n", "lead_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.content)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetDataDir(t *testing.T) {
	tests := []struct {
		name    string
		dataDir string
		want    string
	}{
		{name: "absolute path", dataDir: "/custom/path", want: "/custom/path"},
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		tests = append(tests,
			struct {
				name    string
				dataDir string
				want    string
			}{name: "tilde expands home", dataDir: "~", want: home},
			struct {
				name    string
				dataDir string
				want    string
			}{name: "tilde path expands home", dataDir: "~/mydata", want: filepath.Join(home, "mydata")},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DataDir: tt.dataDir}
			if got := cfg.GetDataDir(); got != tt.want {
				t.Errorf("GetDataDir() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("empty uses default", func(t *testing.T) {
		cfg := &Config{}
		if got := filepath.Base(cfg.GetDataDir()); got != ".dayssince" {
			t.Errorf("GetDataDir() base = %q, want .dayssince", got)
		}
	})
}

func TestResolvedPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"

	if got := cfg.SQLitePath(); got != filepath.Join("/data", "dayssince.db") {
		t.Errorf("SQLitePath() = %q", got)
	}
	cfg.Log.File = "/var/log/ds.log"
	if got := cfg.LogPath(); got != "/var/log/ds.log" {
		t.Errorf("LogPath() = %q", got)
	}
}

func TestSave(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg := Default()
	cfg.DataDir = "/saved/path"
	cfg.Theme.Primary = "#SAVED"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "dayssince", "config.yaml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DataDir != "/saved/path" {
		t.Errorf("loaded DataDir = %q, want /saved/path", loaded.DataDir)
	}
	if loaded.Theme.Primary != "#SAVED" {
		t.Errorf("loaded Theme.Primary = %q, want #SAVED", loaded.Theme.Primary)
	}
}
