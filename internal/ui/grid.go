package ui

import (
	"strings"

	"dayssince/internal/duration"
	"dayssince/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxColumns = 3
	// cardLines is the content height of every card; two more rows go to
	// the border.
	cardLines  = 5
	cardHeight = cardLines + 2
)

// columnsFor returns how many cards of at least colWidth fit in width,
// between 1 and 3.
func columnsFor(width, colWidth int) int {
	if colWidth <= 0 {
		colWidth = 36
	}
	return min(maxColumns, max(1, width/colWidth))
}

// EventGrid lays out event cards in rows and tracks the selected card.
type EventGrid struct {
	events   []storage.Event
	cursor   int
	offset   int
	columns  int
	colWidth int
	width    int
	height   int
	styles   *Styles
	keys     EventKeyMap
}

// NewEventGrid creates an empty grid.
func NewEventGrid(styles *Styles, keys EventKeyMap, colWidth int) *EventGrid {
	return &EventGrid{
		columns:  1,
		colWidth: colWidth,
		styles:   styles,
		keys:     keys,
	}
}

// SetSize sets the space available to the grid.
func (g *EventGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.columns = columnsFor(width, g.colWidth)
	g.scroll()
}

// Columns returns the current number of columns.
func (g *EventGrid) Columns() int {
	return g.columns
}

// SetEvents replaces the visible events, keeping the selection on the same
// event when it is still present.
func (g *EventGrid) SetEvents(events []storage.Event) {
	selected, ok := g.Selected()
	g.events = events
	if ok && g.Select(selected.ID) {
		return
	}
	if g.cursor >= len(g.events) {
		g.cursor = max(0, len(g.events)-1)
	}
	g.scroll()
}

// Select moves the cursor to the event with id and reports whether it was
// found.
func (g *EventGrid) Select(id int64) bool {
	for i, ev := range g.events {
		if ev.ID == id {
			g.cursor = i
			g.scroll()
			return true
		}
	}
	return false
}

// Selected returns the event under the cursor.
func (g *EventGrid) Selected() (storage.Event, bool) {
	if g.cursor < 0 || g.cursor >= len(g.events) {
		return storage.Event{}, false
	}
	return g.events[g.cursor], true
}

// Len returns the number of visible events.
func (g *EventGrid) Len() int {
	return len(g.events)
}

// Update moves the cursor for navigation keys.
func (g *EventGrid) Update(msg tea.KeyMsg) {
	if len(g.events) == 0 {
		return
	}
	last := len(g.events) - 1

	switch {
	case key.Matches(msg, g.keys.Left):
		g.cursor = max(g.cursor-1, 0)
	case key.Matches(msg, g.keys.Right):
		g.cursor = min(g.cursor+1, last)
	case key.Matches(msg, g.keys.Up):
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
	case key.Matches(msg, g.keys.Down):
		g.cursor = min(g.cursor+g.columns, last)
	case key.Matches(msg, g.keys.Top):
		g.cursor = 0
	case key.Matches(msg, g.keys.Bottom):
		g.cursor = last
	}
	g.scroll()
}

func (g *EventGrid) visibleRows() int {
	return max(1, g.height/cardHeight)
}

// scroll keeps the cursor's row on screen.
func (g *EventGrid) scroll() {
	row := g.cursor / max(1, g.columns)
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

func (g *EventGrid) cardWidth() int {
	gaps := g.columns - 1
	return max(16, (g.width-gaps)/max(1, g.columns))
}

// View renders the visible rows of cards as of today.
func (g *EventGrid) View(today duration.Date, detailed bool) string {
	if len(g.events) == 0 {
		return ""
	}

	width := g.cardWidth()
	start := g.offset * g.columns
	end := min(len(g.events), start+g.visibleRows()*g.columns)

	var rows []string
	for i := start; i < end; i += g.columns {
		var cards []string
		for j := i; j < min(i+g.columns, end); j++ {
			if len(cards) > 0 {
				cards = append(cards, " ")
			}
			cards = append(cards, g.renderCard(g.events[j], j == g.cursor, width, today, detailed))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (g *EventGrid) renderCard(ev storage.Event, selected bool, width int, today duration.Date, detailed bool) string {
	s := g.styles
	inner := max(4, width-4)
	res := ev.Durations(today, detailed)

	lines := []string{
		s.CardNameStyle.Render(truncateText(ev.Name, inner)),
		s.CardDateStyle.Render("since " + ev.Date.String()),
		s.ElapsedStyle.Render(truncateText(res.ElapsedText(), inner)),
	}

	if res.Anniversary != nil {
		style := s.CountdownStyle
		if *res.Anniversary == 0 {
			style = s.TodayStyle
		}
		lines = append(lines, style.Render(truncateText(res.AnniversaryText(), inner)))
	}

	if res.NextDue != nil {
		text := res.DueText()
		style := s.CountdownStyle
		switch n := *res.NextDue; {
		case n < 0:
			style = s.OverdueStyle
			text += " (overdue)"
		case n == 0:
			style = s.TodayStyle
			text += " (today)"
		}
		lines = append(lines, style.Render(truncateText(text, inner)))
	}

	card := s.CardStyle
	if selected {
		card = s.CardSelectedStyle
	}
	return card.Width(width - 2).Height(cardLines).Render(strings.Join(lines, "\n"))
}
