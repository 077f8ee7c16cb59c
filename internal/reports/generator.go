package reports

import (
	"sort"
	"strings"
	"time"

	"dayssince/internal/duration"
	"dayssince/internal/storage"
)

// Generator builds reports from the store's current events and clock.
type Generator struct {
	store *storage.Store
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Store) *Generator {
	return &Generator{store: store}
}

// Generate builds a report for today with the given look-ahead window.
func (g *Generator) Generate(within int) *Report {
	r := Generate(g.store.Events(), g.store.Today(), within)
	r.GeneratedAt = g.store.Now()
	return r
}

// Generate builds a report over events as of today. Anniversaries and due
// dates at most within days away are listed as upcoming, soonest first.
func Generate(events []storage.Event, today duration.Date, within int) *Report {
	if within < 0 {
		within = 0
	}
	r := &Report{
		Date:     today,
		Within:   within,
		Upcoming: []Upcoming{},
		Overdue:  []Overdue{},
		Events:   make([]EventSummary, 0, len(events)),
	}

	for _, ev := range events {
		res := ev.Durations(today, false)

		r.Events = append(r.Events, EventSummary{
			ID:          ev.ID,
			Name:        ev.Name,
			Date:        ev.Date,
			ElapsedDays: res.Elapsed.Days,
			Span:        Span(res.Elapsed.Span),
			Anniversary: res.Anniversary,
			NextDue:     res.NextDue,
		})

		if res.Anniversary != nil && *res.Anniversary <= within {
			on := today.AddDays(*res.Anniversary)
			r.Upcoming = append(r.Upcoming, Upcoming{
				EventID: ev.ID,
				Name:    ev.Name,
				Kind:    KindAnniversary,
				On:      on,
				InDays:  *res.Anniversary,
				Years:   on.Year - ev.Date.Year,
			})
		}

		if res.NextDue != nil {
			due, _ := duration.DueDate(ev.Date, ev.Due())
			switch n := *res.NextDue; {
			case n < 0:
				r.Overdue = append(r.Overdue, Overdue{
					EventID:     ev.ID,
					Name:        ev.Name,
					DueOn:       due,
					DaysOverdue: -n,
				})
			case n <= within:
				r.Upcoming = append(r.Upcoming, Upcoming{
					EventID: ev.ID,
					Name:    ev.Name,
					Kind:    KindDue,
					On:      due,
					InDays:  n,
				})
			}
		}
	}

	sort.SliceStable(r.Upcoming, func(i, j int) bool {
		a, b := r.Upcoming[i], r.Upcoming[j]
		if a.InDays != b.InDays {
			return a.InDays < b.InDays
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	sort.SliceStable(r.Overdue, func(i, j int) bool {
		return r.Overdue[i].DaysOverdue > r.Overdue[j].DaysOverdue
	})

	r.GeneratedAt = today.Time(time.Local)
	return r
}
