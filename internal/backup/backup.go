// Package backup keeps timestamped copies of the event snapshot under the
// data directory and restores them through the store.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"dayssince/internal/fsutil"
	"dayssince/internal/log"
	"dayssince/internal/storage"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	SnapshotFile    = "snapshot.json"
	BackupsDir      = "backups"

	nameLayout = "2006-01-02_150405"
)

// ErrNoBackups is returned by Latest when nothing has been backed up.
var ErrNoBackups = errors.New("no backups available")

// Manager creates and restores backups in <dataDir>/backups.
type Manager struct {
	backupDir  string
	appVersion string
	now        func() time.Time
}

// Manifest describes one backup.
type Manifest struct {
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	AppVersion string    `json:"app_version"`
	Stats      Stats     `json:"stats"`
}

// Stats counts what a snapshot holds.
type Stats struct {
	Events        int `json:"events"`
	Anniversaries int `json:"anniversaries"`
	DueDates      int `json:"due_dates"`
}

// Info summarizes a backup for listing.
type Info struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     Stats
}

// NewManager returns a manager for dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// Dir returns the directory holding the backups.
func (m *Manager) Dir() string {
	return m.backupDir
}

// StatsFor counts events and enabled countdowns in snap.
func StatsFor(snap storage.Snapshot) Stats {
	s := Stats{Events: len(snap.Events)}
	for _, ev := range snap.Events {
		if ev.ShowAnniversary {
			s.Anniversaries++
		}
		if _, ok := ev.Due().Days(); ok {
			s.DueDates++
		}
	}
	return s
}

// Create writes snap as a new backup and returns its name.
func (m *Manager) Create(snap storage.Snapshot) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	name, backupPath, err := m.reserve(now)
	if err != nil {
		return "", err
	}

	data, err := storage.MarshalSnapshot(snap)
	if err != nil {
		_ = os.RemoveAll(backupPath)
		return "", err
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(backupPath, SnapshotFile), data, 0600); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Stats:      StatsFor(snap),
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	log.Info("backup created", "name", name, "events", manifest.Stats.Events)
	return name, nil
}

// reserve creates a fresh backup directory named after now, moving forward
// a millisecond at a time when the name is taken.
func (m *Manager) reserve(now time.Time) (string, string, error) {
	t := now.Truncate(time.Millisecond)
	for i := 0; i < 1000; i++ {
		name := formatName(t)
		path := filepath.Join(m.backupDir, name)
		err := os.Mkdir(path, 0700)
		if err == nil {
			return name, path, nil
		}
		if !os.IsExist(err) {
			return "", "", fmt.Errorf("failed to create backup: %w", err)
		}
		t = t.Add(time.Millisecond)
	}
	return "", "", fmt.Errorf("failed to create backup: no free name near %s", formatName(now))
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue // not a backup
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Get returns information about one backup.
func (m *Manager) Get(name string) (*Info, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*Info, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
	}

	return &Info{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Latest returns the most recent backup.
func (m *Manager) Latest() (*Info, error) {
	backups, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}
	return &backups[0], nil
}

// Load reads and validates the snapshot stored in a backup.
func (m *Manager) Load(name string) (storage.Snapshot, error) {
	if err := validateBackupName(name); err != nil {
		return storage.Snapshot{}, err
	}

	data, err := os.ReadFile(filepath.Join(m.backupDir, name, SnapshotFile))
	if os.IsNotExist(err) {
		return storage.Snapshot{}, fmt.Errorf("backup not found: %s", name)
	}
	if err != nil {
		return storage.Snapshot{}, err
	}

	snap, err := storage.ParseSnapshot(data)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("backup %s: %w", name, err)
	}
	return snap, nil
}

// Restore replaces the store's state with a backup. The current state is
// backed up first; its name is returned so the user can undo the restore.
func (m *Manager) Restore(store *storage.Store, name string) (string, error) {
	snap, err := m.Load(name)
	if err != nil {
		return "", err
	}

	safetyName, err := m.Create(store.Export())
	if err != nil {
		return "", fmt.Errorf("failed to create safety backup: %w", err)
	}

	if err := store.ImportSnapshot(snap); err != nil {
		return safetyName, fmt.Errorf("failed to restore %s (safety backup: %s): %w", name, safetyName, err)
	}

	log.Info("backup restored", "name", name, "safety", safetyName)
	return safetyName, nil
}

// Delete removes a backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(backupPath)
}

// Prune removes all but the keep most recent backups and returns how many
// were deleted.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keep:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// formatName renders t as 2006-01-02_150405_mmm.
func formatName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format(nameLayout), t.Nanosecond()/1e6)
}

// parseBackupName accepts 2006-01-02_150405_mmm and, for backups made by
// older versions, 2006-01-02_150405.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == len(nameLayout)+4 {
		base, err := time.ParseInLocation(nameLayout, name[:len(nameLayout)], time.Local)
		if err != nil {
			return time.Time{}, err
		}
		if name[len(nameLayout)] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[len(nameLayout)+1:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return base.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.ParseInLocation(nameLayout, name, time.Local)
}
