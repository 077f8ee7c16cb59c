package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	if err := WriteFileAtomic(path, []byte("one"), 0600); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := WriteFileAtomic(path, []byte("two"), 0600); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want %q", data, "two")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFile_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.ics")
	if err := WriteFile(path, []byte("BEGIN:VCALENDAR"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Stat() error = %v", err)
	}
}

func TestBestEffortBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme")

	BestEffortBackup(path, 0600) // missing source is ignored
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("backup created for missing file")
	}

	if err := os.WriteFile(path, []byte("dark"), 0600); err != nil {
		t.Fatal(err)
	}
	BestEffortBackup(path, 0600)

	data, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("ReadFile(.bak) error = %v", err)
	}
	if string(data) != "dark" {
		t.Errorf("backup = %q, want %q", data, "dark")
	}
}

func TestQuarantine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	now := time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)

	got, err := Quarantine(path, now)
	if err != nil || got != "" {
		t.Fatalf("Quarantine(missing) = %q, %v", got, err)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err = Quarantine(path, now)
	if err != nil {
		t.Fatalf("Quarantine() error = %v", err)
	}
	if want := path + ".corrupt.20240501-083000"; got != want {
		t.Errorf("Quarantine() = %q, want %q", got, want)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original file still present")
	}
}
