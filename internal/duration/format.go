package duration

import "fmt"

// String renders the span as "Y years, M months, D days".
func (s Span) String() string {
	return fmt.Sprintf("%d years, %d months, %d days", s.Years, s.Months, s.Days)
}

// Text renders the primary elapsed line, raw or detailed.
func (e Elapsed) Text() string {
	if e.Detailed {
		return e.Span.String() + " since"
	}
	return fmt.Sprintf("%d days since", e.Days)
}

// ElapsedText is the primary "since" line for a card.
func (r Result) ElapsedText() string {
	return r.Elapsed.Text()
}

// AnniversaryText returns the anniversary line, or "" when absent.
func (r Result) AnniversaryText() string {
	if r.Anniversary == nil {
		return ""
	}
	return fmt.Sprintf("%d days until anniversary", *r.Anniversary)
}

// DueText returns the due-date line, or "" when absent.
func (r Result) DueText() string {
	if r.NextDue == nil {
		return ""
	}
	return fmt.Sprintf("%d days until next due date", *r.NextDue)
}

// Lines returns the non-empty display lines in card order.
func (r Result) Lines() []string {
	lines := []string{r.ElapsedText()}
	if s := r.AnniversaryText(); s != "" {
		lines = append(lines, s)
	}
	if s := r.DueText(); s != "" {
		lines = append(lines, s)
	}
	return lines
}
