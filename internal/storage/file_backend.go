package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dayssince/internal/fsutil"
	"dayssince/internal/log"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

var slotFiles = map[Slot]string{
	SlotEvents:         "events.json",
	SlotTheme:          "theme",
	SlotDurationFormat: "duration_format",
}

// SlotFile returns the file name used for slot inside a data directory.
func SlotFile(slot Slot) string {
	return slotFiles[slot]
}

// FileBackend stores each slot as a plain file in a data directory.
// Writes are atomic and keep the previous value as <file>.bak.
type FileBackend struct {
	mu      sync.Mutex
	dataDir string
	now     func() time.Time
}

// NewFileBackend creates dataDir if needed and returns a backend rooted there.
func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{dataDir: dataDir, now: time.Now}, nil
}

// DataDir returns the directory the backend writes to.
func (b *FileBackend) DataDir() string {
	return b.dataDir
}

func (b *FileBackend) path(slot Slot) (string, error) {
	name, ok := slotFiles[slot]
	if !ok {
		return "", fmt.Errorf("unknown slot %q", slot)
	}
	return filepath.Join(b.dataDir, name), nil
}

func (b *FileBackend) Read(slot Slot) ([]byte, error) {
	path, err := b.path(slot)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return data, nil
}

func (b *FileBackend) Write(slot Slot, data []byte) error {
	path, err := b.path(slot)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return writeSlotFile(path, data)
}

func writeSlotFile(path string, data []byte) error {
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteSlots writes the events slot last. When any write fails, the slots
// already written are put back to their previous contents.
func (b *FileBackend) WriteSlots(values map[Slot][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var written []slotFileState
	for _, slot := range []Slot{SlotTheme, SlotDurationFormat, SlotEvents} {
		data, ok := values[slot]
		if !ok {
			continue
		}
		path, err := b.path(slot)
		if err != nil {
			return err
		}
		prev, readErr := os.ReadFile(path)
		state := slotFileState{path: path, data: prev, existed: readErr == nil}

		if err := writeSlotFile(path, data); err != nil {
			rollbackSlotFiles(written)
			return err
		}
		written = append(written, state)
	}
	return nil
}

// slotFileState is a slot file's contents before a batch write.
type slotFileState struct {
	path    string
	data    []byte
	existed bool
}

func rollbackSlotFiles(states []slotFileState) {
	for i := len(states) - 1; i >= 0; i-- {
		st := states[i]
		var err error
		if st.existed {
			err = fsutil.WriteFileAtomic(st.path, st.data, dataFilePerm)
		} else {
			err = os.Remove(st.path)
		}
		if err != nil {
			log.Error("rolling back slot file", err, "path", st.path)
		}
	}
}

// Recover moves an unreadable slot file aside and restores the .bak copy
// when valid accepts it.
func (b *FileBackend) Recover(slot Slot, valid func([]byte) error) ([]byte, error) {
	path, err := b.path(slot)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	moved, err := fsutil.Quarantine(path, b.now())
	if err != nil {
		return nil, err
	}
	if moved != "" {
		log.Warn("moved unreadable data aside", "slot", slot, "path", moved)
	}

	bak, err := os.ReadFile(path + ".bak")
	if err != nil || len(bytes.TrimSpace(bak)) == 0 || valid(bak) != nil {
		return nil, nil
	}

	if err := fsutil.WriteFileAtomic(path, bak, dataFilePerm); err != nil {
		return bak, fmt.Errorf("restore %s from backup: %w", filepath.Base(path), err)
	}
	log.Info("restored data from backup", "slot", slot, "path", path+".bak")
	return bak, nil
}

func (b *FileBackend) Close() error {
	return nil
}
