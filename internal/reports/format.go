package reports

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatJSON formats a report as indented JSON.
func FormatJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FormatMarkdown renders a report as a Markdown document.
func FormatMarkdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Days Since report for %s\n\n", r.Date)

	fmt.Fprintf(&b, "## Upcoming (next %s)\n\n", plural(r.Within, "day"))
	if len(r.Upcoming) == 0 {
		b.WriteString("_Nothing coming up._\n")
	}
	for _, u := range r.Upcoming {
		fmt.Fprintf(&b, "- **%s**: %s\n", u.Name, describeUpcoming(u))
	}

	if len(r.Overdue) > 0 {
		b.WriteString("\n## Overdue\n\n")
		for _, o := range r.Overdue {
			fmt.Fprintf(&b, "- **%s**: due %s, %s overdue\n", o.Name, o.DueOn, plural(o.DaysOverdue, "day"))
		}
	}

	b.WriteString("\n## All events\n\n")
	if len(r.Events) == 0 {
		b.WriteString("_No events yet._\n")
		return b.String()
	}
	b.WriteString("| Event | Date | Days since | Detailed |\n")
	b.WriteString("|---|---|---:|---|\n")
	for _, e := range r.Events {
		fmt.Fprintf(&b, "| %s | %s | %d | %d years, %d months, %d days |\n",
			escapeCell(e.Name), e.Date, e.ElapsedDays, e.Span.Years, e.Span.Months, e.Span.Days)
	}
	return b.String()
}

func describeUpcoming(u Upcoming) string {
	when := fmt.Sprintf("in %s", plural(u.InDays, "day"))
	if u.InDays == 0 {
		when = "today"
	}

	switch u.Kind {
	case KindAnniversary:
		s := fmt.Sprintf("anniversary %s (%s", when, u.On)
		if u.Years > 0 {
			s += ", " + plural(u.Years, "year")
		}
		return s + ")"
	default:
		return fmt.Sprintf("due %s (%s)", when, u.On)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
