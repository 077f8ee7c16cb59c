package storage

import (
	"fmt"
	"strings"
)

// Filter selects events by which countdowns they show.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterAnniversary Filter = "anniversary"
	FilterDueDate     Filter = "duedate"
	FilterNeither     Filter = "neither"
)

var filterOrder = []Filter{FilterAll, FilterAnniversary, FilterDueDate, FilterNeither}

// ParseFilter accepts a filter name, case-insensitively. Empty means all.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range filterOrder {
		if string(f) == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// Next returns the filter after f in the cycle all, anniversary, duedate,
// neither.
func (f Filter) Next() Filter {
	for i, g := range filterOrder {
		if g == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return FilterAll
}

// Label returns a short human-readable name.
func (f Filter) Label() string {
	switch f {
	case FilterAnniversary:
		return "Anniversaries"
	case FilterDueDate:
		return "Due dates"
	case FilterNeither:
		return "Plain"
	default:
		return "All"
	}
}

// Matches reports whether ev belongs to the category.
func (f Filter) Matches(ev Event) bool {
	switch f {
	case FilterAnniversary:
		return ev.ShowAnniversary
	case FilterDueDate:
		return ev.ShowNextDueDate
	case FilterNeither:
		return !ev.ShowAnniversary && !ev.ShowNextDueDate
	default:
		return true
	}
}

// FilterEvents returns the events whose name contains query
// (case-insensitive, spaces included) and which match f, in their original
// order.
func FilterEvents(events []Event, query string, f Filter) []Event {
	q := strings.ToLower(query)
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if q != "" && !strings.Contains(strings.ToLower(ev.Name), q) {
			continue
		}
		if !f.Matches(ev) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
