package ui

import (
	"fmt"
	"strconv"
	"strings"

	"dayssince/internal/duration"
	"dayssince/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxNameLength = 100

type formField int

const (
	fieldName formField = iota
	fieldDate
	fieldAnniversary
	fieldDue
	fieldDueDays
)

// formAction tells the app what the form wants after a message.
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// EventForm edits the fields of a new or existing event.
type EventForm struct {
	editing *storage.Event

	name    textinput.Model
	date    textinput.Model
	dueDays textinput.Model

	anniversary bool
	due         bool

	focus   formField
	err     string
	pending bool

	width  int
	styles *Styles
	keys   InputKeyMap
}

// NewEventForm returns an empty form for adding an event dated today.
func NewEventForm(styles *Styles, keys InputKeyMap, today duration.Date) *EventForm {
	f := newForm(styles, keys)
	f.date.SetValue(today.String())
	f.name.Focus()
	return f
}

// EditEventForm returns a form filled in from ev.
func EditEventForm(styles *Styles, keys InputKeyMap, ev storage.Event) *EventForm {
	f := newForm(styles, keys)
	f.editing = &ev
	f.name.SetValue(ev.Name)
	f.date.SetValue(ev.Date.String())
	f.anniversary = ev.ShowAnniversary
	f.due = ev.ShowNextDueDate
	if ev.DueDuration > 0 {
		f.dueDays.SetValue(strconv.Itoa(ev.DueDuration))
	}
	f.name.Focus()
	f.name.CursorEnd()
	return f
}

func newForm(styles *Styles, keys InputKeyMap) *EventForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "What happened?"
	name.CharLimit = maxNameLength

	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = duration.DateLayout
	date.CharLimit = len(duration.DateLayout)

	dueDays := textinput.New()
	dueDays.Prompt = ""
	dueDays.Placeholder = "days"
	dueDays.CharLimit = 5

	f := &EventForm{
		name:    name,
		date:    date,
		dueDays: dueDays,
		styles:  styles,
		keys:    keys,
	}
	f.SetWidth(40)
	return f
}

// Editing returns the event being edited, if any.
func (f *EventForm) Editing() (storage.Event, bool) {
	if f.editing == nil {
		return storage.Event{}, false
	}
	return *f.editing, true
}

// SetWidth sets the form's content width.
func (f *EventForm) SetWidth(width int) {
	f.width = width
	inputWidth := max(10, width-14)
	f.name.Width = inputWidth
	f.date.Width = inputWidth
	f.dueDays.Width = inputWidth
}

// SetError shows err under the fields and re-enables editing.
func (f *EventForm) SetError(err error) {
	f.pending = false
	if err == nil {
		f.err = ""
		return
	}
	f.err = err.Error()
}

// Input validates the fields and returns them as an EventInput.
func (f *EventForm) Input() (storage.EventInput, error) {
	in := storage.EventInput{
		Name:            strings.TrimSpace(f.name.Value()),
		ShowAnniversary: f.anniversary,
		ShowNextDueDate: f.due,
	}
	if in.Name == "" {
		return in, fmt.Errorf("name is required")
	}

	date, err := duration.ParseDate(f.date.Value())
	if err != nil {
		return in, err
	}
	in.Date = date

	if f.due {
		raw := strings.TrimSpace(f.dueDays.Value())
		if raw != "" {
			days, err := strconv.Atoi(raw)
			if err != nil || days < 0 {
				return in, fmt.Errorf("due days must be a whole number of days")
			}
			in.DueDuration = days
		}
	} else if f.editing != nil {
		// Keep the stored duration so re-enabling the countdown restores it.
		in.DueDuration = f.editing.DueDuration
	}
	return in, nil
}

// Update handles a message and reports whether the form was submitted or
// cancelled.
func (f *EventForm) Update(msg tea.Msg) (formAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return formNone, f.updateFocused(msg)
	}
	if f.pending {
		return formNone, nil
	}

	switch {
	case key.Matches(keyMsg, f.keys.Cancel):
		return formCancel, nil

	case key.Matches(keyMsg, f.keys.Confirm):
		if _, err := f.Input(); err != nil {
			f.err = err.Error()
			return formNone, nil
		}
		f.err = ""
		f.pending = true
		return formSubmit, nil

	case key.Matches(keyMsg, f.keys.Next):
		return formNone, f.setFocus(f.step(1))

	case key.Matches(keyMsg, f.keys.Prev):
		return formNone, f.setFocus(f.step(-1))

	case f.isCheckbox() && key.Matches(keyMsg, f.keys.Toggle):
		if f.focus == fieldAnniversary {
			f.anniversary = !f.anniversary
		} else {
			f.due = !f.due
		}
		return formNone, nil
	}

	return formNone, f.updateFocused(msg)
}

func (f *EventForm) isCheckbox() bool {
	return f.focus == fieldAnniversary || f.focus == fieldDue
}

// step returns the field delta positions away, skipping the due days field
// while the due checkbox is off.
func (f *EventForm) step(delta int) formField {
	fields := f.visibleFields()
	pos := 0
	for i, fld := range fields {
		if fld == f.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	return fields[pos]
}

func (f *EventForm) visibleFields() []formField {
	fields := []formField{fieldName, fieldDate, fieldAnniversary, fieldDue}
	if f.due {
		fields = append(fields, fieldDueDays)
	}
	return fields
}

func (f *EventForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.date.Blur()
	f.dueDays.Blur()

	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldDate:
		return f.date.Focus()
	case fieldDueDays:
		return f.dueDays.Focus()
	}
	return nil
}

func (f *EventForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldDueDays:
		f.dueDays, cmd = f.dueDays.Update(msg)
	}
	return cmd
}

// View renders the form as a bordered box.
func (f *EventForm) View() string {
	title := "Add event"
	if f.editing != nil {
		title = "Edit event"
	}

	var b strings.Builder
	b.WriteString(f.styles.InputPromptStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(f.row(fieldName, "Name", f.name.View()))
	b.WriteString(f.row(fieldDate, "Date", f.date.View()))
	b.WriteString(f.row(fieldAnniversary, "Anniversary", checkbox(f.anniversary)))
	b.WriteString(f.row(fieldDue, "Due date", checkbox(f.due)))
	if f.due {
		b.WriteString(f.row(fieldDueDays, "Due in days", f.dueDays.View()))
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.FormErrorStyle.Render(f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.styles.RenderHelp("enter", "save", "tab", "next", "space", "toggle", "esc", "cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.styles.ColorPrimary).
		Padding(1, 2).
		Width(f.width).
		Render(b.String())
}

func (f *EventForm) row(field formField, label, value string) string {
	style := f.styles.InputLabelStyle
	if f.focus == field {
		style = f.styles.InputFocusStyle
	}
	return style.Render(label) + value + "\n"
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
