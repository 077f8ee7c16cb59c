package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dayssince/internal/duration"
	"dayssince/internal/log"
)

const maxEventNameLen = 100

// ErrEventNotFound is returned when an operation names an unknown id.
var ErrEventNotFound = errors.New("event not found")

// Store holds the event collection and preferences in memory and writes
// every change through to its Backend before making it visible.
type Store struct {
	mu      sync.Mutex
	backend Backend
	events  []Event
	prefs   Preferences
	now     func() time.Time // injectable clock for deterministic tests
}

// Option configures a Store at Open.
type Option func(*Store)

// WithNow sets the clock used for ids and "today".
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads all slots from backend. Missing slots yield an empty
// collection and default (false) preferences.
func Open(backend Backend, opts ...Option) (*Store, error) {
	s := &Store{backend: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetNowFunc overrides the clock used for ids and "today".
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// Today returns the current local date according to the store clock.
func (s *Store) Today() duration.Date {
	return duration.DateOf(s.Now())
}

// Backend returns the persistence port the store writes to.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Reload re-reads every slot, discarding in-memory state.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	events, err := s.loadEvents()
	if err != nil {
		return err
	}

	dark, err := s.loadFlag(SlotTheme, "dark")
	if err != nil {
		return err
	}
	detailed, err := s.loadFlag(SlotDurationFormat, "true")
	if err != nil {
		return err
	}

	s.events = events
	s.prefs = Preferences{DarkMode: dark, DetailedDuration: detailed}
	return nil
}

func (s *Store) loadEvents() ([]Event, error) {
	data, err := s.backend.Read(SlotEvents)
	if errors.Is(err, ErrSlotNotFound) {
		return []Event{}, nil
	}
	if err != nil {
		return nil, err
	}

	events, decodeErr := decodeEvents(data)
	if decodeErr == nil {
		return events, nil
	}

	r, ok := s.backend.(Recoverer)
	if !ok {
		return nil, decodeErr
	}

	log.Error("stored events are unreadable", decodeErr)
	recovered, err := r.Recover(SlotEvents, func(b []byte) error {
		_, err := decodeEvents(b)
		return err
	})
	if err != nil {
		log.Error("recovery failed", err)
	}
	if recovered == nil {
		log.Warn("starting with an empty event list")
		return []Event{}, nil
	}
	return decodeEvents(recovered)
}

func (s *Store) loadFlag(slot Slot, trueValue string) (bool, error) {
	data, err := s.backend.Read(slot)
	if errors.Is(err, ErrSlotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(data)) == trueValue, nil
}

func decodeEvents(data []byte) ([]Event, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("events data is empty")
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func encodeEvents(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize events: %w", err)
	}
	return data, nil
}

func (s *Store) saveEventsLocked(events []Event) error {
	data, err := encodeEvents(events)
	if err != nil {
		return err
	}
	if err := s.backend.Write(SlotEvents, data); err != nil {
		return err
	}
	s.events = events
	return nil
}

// ============================================================================
// Events
// ============================================================================

// Events returns a copy of the collection in stored order.
func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEvents(s.events)
}

// Event returns the event with the given id.
func (s *Store) Event(id int64) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Event{}, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	return s.events[i], nil
}

// AddEvent validates in, assigns a fresh id and appends the event.
func (s *Store) AddEvent(in EventInput) (*Event, error) {
	ev, err := in.toEvent()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = s.nextIDLocked()
	events := append(cloneEvents(s.events), ev)
	if err := s.saveEventsLocked(events); err != nil {
		return nil, err
	}

	log.Debug("event added", "id", ev.ID, "name", ev.Name)
	return &ev, nil
}

// UpdateEvent replaces the fields of the event with ev.ID in place.
func (s *Store) UpdateEvent(ev Event) error {
	updated, err := ev.Input().toEvent()
	if err != nil {
		return err
	}
	updated.ID = ev.ID

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(ev.ID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrEventNotFound, ev.ID)
	}

	events := cloneEvents(s.events)
	events[i] = updated
	if err := s.saveEventsLocked(events); err != nil {
		return err
	}

	log.Debug("event updated", "id", ev.ID)
	return nil
}

// ResetToToday sets the event's date to today and returns the result.
func (s *Store) ResetToToday(id int64) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}

	events := cloneEvents(s.events)
	events[i].Date = duration.DateOf(s.now())
	if err := s.saveEventsLocked(events); err != nil {
		return nil, err
	}

	ev := events[i]
	log.Debug("event reset", "id", id, "date", ev.Date)
	return &ev, nil
}

// RemoveEvent deletes the event and returns what was removed.
func (s *Store) RemoveEvent(id int64) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}

	removed := s.events[i]
	events := make([]Event, 0, len(s.events)-1)
	events = append(events, s.events[:i]...)
	events = append(events, s.events[i+1:]...)
	if err := s.saveEventsLocked(events); err != nil {
		return nil, err
	}

	log.Debug("event removed", "id", id)
	return &removed, nil
}

// RestoreEvent puts back a previously removed event, keeping its id. It is
// inserted before the first event with a larger id.
func (s *Store) RestoreEvent(ev Event) error {
	restored, err := ev.Input().toEvent()
	if err != nil {
		return err
	}
	if ev.ID <= 0 {
		return fmt.Errorf("event id is required")
	}
	restored.ID = ev.ID

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(ev.ID) >= 0 {
		return fmt.Errorf("event already exists: %d", ev.ID)
	}

	pos := len(s.events)
	for i, e := range s.events {
		if e.ID > ev.ID {
			pos = i
			break
		}
	}

	events := make([]Event, 0, len(s.events)+1)
	events = append(events, s.events[:pos]...)
	events = append(events, restored)
	events = append(events, s.events[pos:]...)
	return s.saveEventsLocked(events)
}

// Durations computes the display facts for ev using the store's clock and
// detailed-format preference.
func (s *Store) Durations(ev Event) duration.Result {
	s.mu.Lock()
	today := duration.DateOf(s.now())
	detailed := s.prefs.DetailedDuration
	s.mu.Unlock()
	return ev.Durations(today, detailed)
}

func (s *Store) indexLocked(id int64) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked returns the clock in Unix milliseconds, bumped past every
// existing id so ids stay unique and increasing.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	for _, e := range s.events {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

func (in EventInput) toEvent() (Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Event{}, fmt.Errorf("event name is required")
	}
	if len(name) > maxEventNameLen {
		return Event{}, fmt.Errorf("event name too long (max %d)", maxEventNameLen)
	}
	if err := validateDate(in.Date); err != nil {
		return Event{}, err
	}
	if in.DueDuration < 0 {
		return Event{}, fmt.Errorf("due duration must not be negative")
	}

	return Event{
		Name:            name,
		Date:            in.Date,
		ShowAnniversary: in.ShowAnniversary,
		ShowNextDueDate: in.ShowNextDueDate,
		DueDuration:     in.DueDuration,
	}, nil
}

func validateDate(d duration.Date) error {
	if d.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if duration.NewDate(d.Year, d.Month, d.Day) != d {
		return fmt.Errorf("invalid date %04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	}
	return nil
}

func cloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// ============================================================================
// Preferences
// ============================================================================

// Preferences returns the current display preferences.
func (s *Store) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetDarkMode persists the theme selection.
func (s *Store) SetDarkMode(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Write(SlotTheme, themeValue(dark)); err != nil {
		return err
	}
	s.prefs.DarkMode = dark
	return nil
}

// ToggleDarkMode flips the theme and returns the new value.
func (s *Store) ToggleDarkMode() (bool, error) {
	dark := !s.Preferences().DarkMode
	return dark, s.SetDarkMode(dark)
}

// SetDetailedDuration persists the duration-format selection.
func (s *Store) SetDetailedDuration(detailed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Write(SlotDurationFormat, formatValue(detailed)); err != nil {
		return err
	}
	s.prefs.DetailedDuration = detailed
	return nil
}

// ToggleDetailedDuration flips the duration format and returns the new value.
func (s *Store) ToggleDetailedDuration() (bool, error) {
	detailed := !s.Preferences().DetailedDuration
	return detailed, s.SetDetailedDuration(detailed)
}

func themeValue(dark bool) []byte {
	if dark {
		return []byte("dark")
	}
	return []byte("light")
}

func formatValue(detailed bool) []byte {
	if detailed {
		return []byte("true")
	}
	return []byte("false")
}
