// Package reports summarizes the event collection: what comes up soon, what
// is overdue, and how long it has been since each event.
package reports

import (
	"time"

	"dayssince/internal/duration"
)

// Kind names the countdown an upcoming item belongs to.
type Kind string

const (
	KindAnniversary Kind = "anniversary"
	KindDue         Kind = "due"
)

// Report is a snapshot of the collection as of one day.
type Report struct {
	Date        duration.Date  `json:"date"`
	Within      int            `json:"within_days"`
	Upcoming    []Upcoming     `json:"upcoming"`
	Overdue     []Overdue      `json:"overdue"`
	Events      []EventSummary `json:"events"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Upcoming is an anniversary or due date falling within the report window.
type Upcoming struct {
	EventID int64         `json:"event_id"`
	Name    string        `json:"name"`
	Kind    Kind          `json:"kind"`
	On      duration.Date `json:"on"`
	InDays  int           `json:"in_days"`
	// Years is the anniversary number; zero for due dates.
	Years int `json:"years,omitempty"`
}

// Overdue is a due date that has passed.
type Overdue struct {
	EventID     int64         `json:"event_id"`
	Name        string        `json:"name"`
	DueOn       duration.Date `json:"due_on"`
	DaysOverdue int           `json:"days_overdue"`
}

// EventSummary holds the computed durations for one event.
type EventSummary struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Date        duration.Date `json:"date"`
	ElapsedDays int           `json:"elapsed_days"`
	Span        Span          `json:"span"`
	Anniversary *int          `json:"days_to_anniversary,omitempty"`
	NextDue     *int          `json:"days_to_due,omitempty"`
}

// Span mirrors duration.Span with JSON names.
type Span struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}
