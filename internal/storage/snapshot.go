package storage

import (
	"encoding/json"
	"fmt"

	"dayssince/internal/log"
)

// SnapshotFileName is the conventional name of an exported snapshot.
const SnapshotFileName = "days_since_data.json"

// Export returns the full event collection and preferences.
func (s *Store) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Events:               cloneEvents(s.events),
		IsDarkMode:           s.prefs.DarkMode,
		ShowDetailedDuration: s.prefs.DetailedDuration,
	}
}

// ExportJSON returns the snapshot document, indented.
func (s *Store) ExportJSON() ([]byte, error) {
	return MarshalSnapshot(s.Export())
}

// MarshalSnapshot encodes snap as an indented JSON document.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	if snap.Events == nil {
		snap.Events = []Event{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	return data, nil
}

// ParseSnapshot decodes and validates a snapshot document. The events key
// is required; missing preference flags default to false.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var raw struct {
		Events               *[]Event `json:"events"`
		IsDarkMode           bool     `json:"isDarkMode"`
		ShowDetailedDuration bool     `json:"showDetailedDuration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if raw.Events == nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: missing events")
	}

	snap := Snapshot{
		Events:               *raw.Events,
		IsDarkMode:           raw.IsDarkMode,
		ShowDetailedDuration: raw.ShowDetailedDuration,
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Validate checks every event and that ids are positive and unique.
func (snap Snapshot) Validate() error {
	seen := make(map[int64]bool, len(snap.Events))
	for i, ev := range snap.Events {
		if ev.ID <= 0 {
			return fmt.Errorf("event %d: id must be positive", i+1)
		}
		if seen[ev.ID] {
			return fmt.Errorf("event %d: duplicate id %d", i+1, ev.ID)
		}
		seen[ev.ID] = true

		if _, err := ev.Input().toEvent(); err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, ev.Name, err)
		}
	}
	return nil
}

// Import replaces all events and preferences with the snapshot in data.
// On any error the store and its backend are left unchanged.
func (s *Store) Import(data []byte) error {
	snap, err := ParseSnapshot(data)
	if err != nil {
		log.Error("import rejected", err)
		return err
	}
	return s.ImportSnapshot(snap)
}

// ImportSnapshot validates snap and replaces all events and preferences
// with it.
func (s *Store) ImportSnapshot(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		log.Error("import rejected", err)
		return err
	}

	events := make([]Event, len(snap.Events))
	for i, ev := range snap.Events {
		normalized, _ := ev.Input().toEvent()
		normalized.ID = ev.ID
		events[i] = normalized
	}

	eventsData, err := encodeEvents(events)
	if err != nil {
		log.Error("import rejected", err)
		return err
	}
	values := map[Slot][]byte{
		SlotEvents:         eventsData,
		SlotTheme:          themeValue(snap.IsDarkMode),
		SlotDurationFormat: formatValue(snap.ShowDetailedDuration),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeSlotsLocked(values); err != nil {
		log.Error("import failed", err)
		return err
	}

	s.events = events
	s.prefs = snap.Preferences()
	log.Info("snapshot imported", "events", len(events))
	return nil
}

func (s *Store) writeSlotsLocked(values map[Slot][]byte) error {
	if bw, ok := s.backend.(BatchWriter); ok {
		return bw.WriteSlots(values)
	}
	for _, slot := range Slots {
		data, ok := values[slot]
		if !ok {
			continue
		}
		if err := s.backend.Write(slot, data); err != nil {
			return err
		}
	}
	return nil
}
