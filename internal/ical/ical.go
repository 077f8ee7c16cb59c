// Package ical converts events to and from iCalendar documents. Anniversaries
// become yearly recurring all-day events; due dates become single all-day
// events.
package ical

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"dayssince/internal/duration"
	"dayssince/internal/log"
	"dayssince/internal/storage"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const (
	// FileName is the default export file name.
	FileName = "days_since.ics"

	// PropertyDueDays carries dueDuration so a re-import is lossless.
	PropertyDueDays = ics.ComponentProperty("X-DAYSSINCE-DUE-DAYS")
	// PropertyShowDue carries showNextDueDate, which may be off while a
	// duration is stored.
	PropertyShowDue = ics.ComponentProperty("X-DAYSSINCE-SHOW-DUE")

	productID = "-//dayssince//dayssince//EN"
	uidDomain = "dayssince"
	dateValue = "20060102"
)

// Options controls Export.
type Options struct {
	// Stamp is written as DTSTAMP; zero means time.Now.
	Stamp time.Time
	// SkipDue leaves out the separate due-date events.
	SkipDue bool
}

// EventUID returns the UID of the anchor VEVENT for an event id.
func EventUID(id int64) string {
	return fmt.Sprintf("event-%d@%s", id, uidDomain)
}

// DueUID returns the UID of the due-date VEVENT for an event id.
func DueUID(id int64) string {
	return fmt.Sprintf("due-%d@%s", id, uidDomain)
}

// Export renders events as an iCalendar document.
func Export(events []storage.Event, opts Options) (string, error) {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	stamp = stamp.UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		start := ev.Date.Time(time.UTC)

		vevent := cal.AddEvent(EventUID(ev.ID))
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(ev.Name)
		vevent.SetAllDayStartAt(start)
		vevent.SetAllDayEndAt(start.AddDate(0, 0, 1))
		vevent.SetDescription(fmt.Sprintf("Since %s", ev.Date))

		if ev.ShowAnniversary {
			rule, err := yearlyRule(start)
			if err != nil {
				return "", fmt.Errorf("event %d: %w", ev.ID, err)
			}
			vevent.AddProperty(ics.ComponentPropertyRrule, rule)
		}

		if ev.DueDuration > 0 {
			vevent.SetProperty(PropertyDueDays, strconv.Itoa(ev.DueDuration))
		}
		if ev.DueDuration > 0 || ev.ShowNextDueDate {
			vevent.SetProperty(PropertyShowDue, strings.ToUpper(strconv.FormatBool(ev.ShowNextDueDate)))
		}

		if opts.SkipDue {
			continue
		}
		due, ok := duration.DueDate(ev.Date, ev.Due())
		if !ok {
			continue
		}
		dueStart := due.Time(time.UTC)
		dueEvent := cal.AddEvent(DueUID(ev.ID))
		dueEvent.SetDtStampTime(stamp)
		dueEvent.SetSummary(ev.Name + " (due)")
		dueEvent.SetAllDayStartAt(dueStart)
		dueEvent.SetAllDayEndAt(dueStart.AddDate(0, 0, 1))
		dueEvent.SetDescription(fmt.Sprintf("%d days after %s", ev.DueDuration, ev.Date))
	}

	return cal.Serialize(), nil
}

func yearlyRule(start time.Time) (string, error) {
	r, err := rrule.NewRRule(rrule.ROption{Freq: rrule.YEARLY, Dtstart: start})
	if err != nil {
		return "", fmt.Errorf("build yearly rule: %w", err)
	}
	return r.OrigOptions.RRuleString(), nil
}

// Decoded is one VEVENT read back as an event.
type Decoded struct {
	UID   string
	Input storage.EventInput
}

// Decode reads every VEVENT that can become an event. Due-date events
// written by Export are skipped. Events that cannot be read are reported
// in the returned error list and skipped.
func Decode(r io.Reader) ([]Decoded, []error, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parse calendar: %w", err)
	}

	var (
		out  []Decoded
		errs []error
	)
	for _, vevent := range cal.Events() {
		var uid string
		if p := vevent.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
			uid = p.Value
		}
		if strings.HasPrefix(uid, "due-") && strings.HasSuffix(uid, "@"+uidDomain) {
			continue
		}

		in, err := decodeEvent(vevent)
		if err != nil {
			log.Warn("skipping calendar event", "uid", uid, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", describe(uid, vevent), err))
			continue
		}
		out = append(out, Decoded{UID: uid, Input: in})
	}
	return out, errs, nil
}

func describe(uid string, vevent *ics.VEvent) string {
	if p := vevent.GetProperty(ics.ComponentPropertySummary); p != nil && p.Value != "" {
		return p.Value
	}
	if uid != "" {
		return uid
	}
	return "event"
}

func decodeEvent(vevent *ics.VEvent) (storage.EventInput, error) {
	var in storage.EventInput

	summary := vevent.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return in, fmt.Errorf("missing SUMMARY")
	}
	in.Name = unescapeText(strings.TrimSpace(summary.Value))

	start := vevent.GetProperty(ics.ComponentPropertyDtStart)
	if start == nil {
		return in, fmt.Errorf("missing DTSTART")
	}
	date, err := parseDateValue(start.Value)
	if err != nil {
		return in, err
	}
	in.Date = date

	if p := vevent.GetProperty(ics.ComponentPropertyRrule); p != nil {
		yearly, err := isYearly(p.Value)
		if err != nil {
			return in, err
		}
		in.ShowAnniversary = yearly
	}

	if p := vevent.GetProperty(PropertyDueDays); p != nil {
		days, err := strconv.Atoi(strings.TrimSpace(p.Value))
		if err != nil || days < 0 {
			return in, fmt.Errorf("invalid %s %q", PropertyDueDays, p.Value)
		}
		in.DueDuration = days
		in.ShowNextDueDate = days > 0
	}

	if p := vevent.GetProperty(PropertyShowDue); p != nil {
		show, err := strconv.ParseBool(strings.TrimSpace(p.Value))
		if err != nil {
			return in, fmt.Errorf("invalid %s %q", PropertyShowDue, p.Value)
		}
		in.ShowNextDueDate = show
	}
	return in, nil
}

// parseDateValue accepts DATE values and DATE-TIME values, UTC or floating.
// UTC times are converted to the local date.
func parseDateValue(v string) (duration.Date, error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "Z"):
		t, err := time.Parse("20060102T150405Z", v)
		if err != nil {
			return duration.Date{}, fmt.Errorf("invalid DTSTART %q", v)
		}
		return duration.DateOf(t.Local()), nil
	case len(v) >= len(dateValue):
		t, err := time.Parse(dateValue, v[:len(dateValue)])
		if err != nil {
			return duration.Date{}, fmt.Errorf("invalid DTSTART %q", v)
		}
		return duration.DateOf(t), nil
	default:
		return duration.Date{}, fmt.Errorf("invalid DTSTART %q", v)
	}
}

// isYearly reports whether an RRULE repeats every year.
func isYearly(rule string) (bool, error) {
	opt, err := rrule.StrToROption(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"))
	if err != nil {
		return false, fmt.Errorf("invalid RRULE %q: %w", rule, err)
	}
	return opt.Freq == rrule.YEARLY && opt.Interval <= 1, nil
}

var textUnescaper = strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n", `\\`, `\`)

func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}
