package storage

import (
	"dayssince/internal/duration"
)

// Event is a named anchor date tracked by the app.
// JSON keys match the snapshot format exchanged with the web version.
type Event struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Date            duration.Date `json:"date"`
	ShowAnniversary bool          `json:"showAnniversary"`
	ShowNextDueDate bool          `json:"showNextDueDate"`
	DueDuration     int           `json:"dueDuration"`
}

// Due returns the due-date variant for the event. A disabled flag or a zero
// duration yields duration.NoDue.
func (e Event) Due() duration.Due {
	if !e.ShowNextDueDate {
		return duration.NoDue()
	}
	return duration.DueAfter(e.DueDuration)
}

// Options builds engine options for the event.
func (e Event) Options(detailed bool) duration.Options {
	return duration.Options{
		ShowAnniversary: e.ShowAnniversary,
		Due:             e.Due(),
		Detailed:        detailed,
	}
}

// Durations computes the event's display facts as of today.
func (e Event) Durations(today duration.Date, detailed bool) duration.Result {
	return duration.Compute(e.Date, e.Options(detailed), today)
}

// Input returns the editable fields of e.
func (e Event) Input() EventInput {
	return EventInput{
		Name:            e.Name,
		Date:            e.Date,
		ShowAnniversary: e.ShowAnniversary,
		ShowNextDueDate: e.ShowNextDueDate,
		DueDuration:     e.DueDuration,
	}
}

// EventInput holds the user-editable fields of an event.
type EventInput struct {
	Name            string
	Date            duration.Date
	ShowAnniversary bool
	ShowNextDueDate bool
	DueDuration     int
}

// Preferences are the process-wide display settings.
type Preferences struct {
	DarkMode         bool
	DetailedDuration bool
}

// Snapshot is the import/export document.
type Snapshot struct {
	Events               []Event `json:"events"`
	IsDarkMode           bool    `json:"isDarkMode"`
	ShowDetailedDuration bool    `json:"showDetailedDuration"`
}

// Preferences returns the preference part of the snapshot.
func (s Snapshot) Preferences() Preferences {
	return Preferences{DarkMode: s.IsDarkMode, DetailedDuration: s.ShowDetailedDuration}
}
