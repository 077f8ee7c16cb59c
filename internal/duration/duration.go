// Package duration computes elapsed time and countdowns for an event's
// anchor date. Every function is pure: "today" is always passed in.
package duration

import "fmt"

// Due selects whether a due-date countdown is computed. The zero value is
// NoDue.
type Due struct {
	days int
}

// NoDue disables the due-date countdown.
func NoDue() Due {
	return Due{}
}

// DueAfter enables a countdown to anchor+days. A non-positive day count
// disables it, the same as NoDue.
func DueAfter(days int) Due {
	if days <= 0 {
		return Due{}
	}
	return Due{days: days}
}

// Days returns the configured day count and whether the countdown is on.
func (d Due) Days() (int, bool) {
	return d.days, d.days > 0
}

// String implements fmt.Stringer.
func (d Due) String() string {
	if d.days <= 0 {
		return "NoDue"
	}
	return fmt.Sprintf("Due{%d}", d.days)
}

// Options controls which parts of a Result are computed.
type Options struct {
	ShowAnniversary bool
	Due             Due
	// Detailed selects the years/months/days form as the primary
	// elapsed text. Both forms are always computed.
	Detailed bool
}

// Span is a calendar-aware years/months/days decomposition.
type Span struct {
	Years  int
	Months int
	Days   int
}

// Elapsed is the time since the anchor date.
type Elapsed struct {
	Days     int
	Span     Span
	Detailed bool
}

// Result holds every derived fact for one anchor date.
// Anniversary and NextDue are nil when their feature is off.
type Result struct {
	Elapsed     Elapsed
	Anniversary *int
	NextDue     *int
}

// Compute derives the elapsed time, next anniversary and next due date for
// anchor as of today. It never fails and never mutates its inputs.
func Compute(anchor Date, opts Options, today Date) Result {
	res := Result{
		Elapsed: Elapsed{
			Days:     anchor.DaysUntil(today),
			Span:     Between(anchor, today),
			Detailed: opts.Detailed,
		},
	}

	if opts.ShowAnniversary {
		n := DaysToAnniversary(anchor, today)
		res.Anniversary = &n
	}

	if due, ok := DueDate(anchor, opts.Due); ok {
		n := today.DaysUntil(due)
		res.NextDue = &n
	}

	return res
}

// Between subtracts anchor from today field by field. A negative day count
// borrows the length of the month before the current borrow month, starting
// from the month preceding today's, until it is non-negative; a negative
// month count then borrows 12 months from the years.
func Between(anchor, today Date) Span {
	years := today.Year - anchor.Year
	months := int(today.Month) - int(anchor.Month)
	days := today.Day - anchor.Day

	year, month := today.Year, today.Month
	for days < 0 {
		var n int
		n, year, month = daysInMonthBefore(year, month)
		days += n
		months--
	}

	for months < 0 {
		years--
		months += 12
	}

	return Span{Years: years, Months: months, Days: days}
}

// DaysToAnniversary returns the number of days until the anchor's month and
// day next occur on or after today. The result is in [0, 366].
func DaysToAnniversary(anchor, today Date) int {
	next := NewDate(today.Year, anchor.Month, anchor.Day)
	if next.Before(today) {
		next = NewDate(today.Year+1, anchor.Month, anchor.Day)
	}
	return today.DaysUntil(next)
}

// DueDate returns the anchor shifted by the due duration, if one is set.
func DueDate(anchor Date, due Due) (Date, bool) {
	days, ok := due.Days()
	if !ok {
		return Date{}, false
	}
	return anchor.AddDays(days), true
}
