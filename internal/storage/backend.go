package storage

import (
	"errors"
	"sync"
)

// Slot names one independently persisted value.
type Slot string

const (
	SlotEvents         Slot = "events"
	SlotTheme          Slot = "theme"
	SlotDurationFormat Slot = "duration_format"
)

// Slots lists every slot in load order.
var Slots = []Slot{SlotEvents, SlotTheme, SlotDurationFormat}

// ErrSlotNotFound is returned by Backend.Read for a slot never written.
var ErrSlotNotFound = errors.New("slot not found")

// Backend is the persistence port used by Store. Each slot holds an opaque
// value that is always replaced whole.
type Backend interface {
	Read(slot Slot) ([]byte, error)
	Write(slot Slot, data []byte) error
	Close() error
}

// BatchWriter is implemented by backends that can replace several slots at
// once, all or nothing.
type BatchWriter interface {
	WriteSlots(values map[Slot][]byte) error
}

// Recoverer is implemented by backends that keep a previous copy of a slot.
// Recover returns the last copy accepted by valid, or nil data when none is
// usable; either way the unreadable value is set aside.
type Recoverer interface {
	Recover(slot Slot, valid func([]byte) error) ([]byte, error)
}

// MemoryBackend keeps slots in memory. It is safe for concurrent use.
type MemoryBackend struct {
	mu    sync.Mutex
	slots map[Slot][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[Slot][]byte)}
}

func (m *MemoryBackend) Read(slot Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) Write(slot Slot, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) WriteSlots(values map[Slot][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, data := range values {
		m.slots[slot] = append([]byte(nil), data...)
	}
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
