// Package remind turns upcoming and overdue countdowns into desktop
// notifications on a cron schedule.
package remind

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dayssince/internal/config"
	"dayssince/internal/duration"
	"dayssince/internal/log"
	"dayssince/internal/notify"
	"dayssince/internal/reports"
	"dayssince/internal/storage"

	"github.com/robfig/cron/v3"
)

// Reminder is one countdown worth telling the user about.
type Reminder struct {
	EventID int64
	Name    string
	Kind    reports.Kind
	On      duration.Date
	// InDays is negative for overdue due dates.
	InDays int
	Years  int
}

// Overdue reports whether the reminder is for a due date that has passed.
func (r Reminder) Overdue() bool {
	return r.InDays < 0
}

func (r Reminder) key() string {
	return fmt.Sprintf("%s-%d-%s", r.Kind, r.EventID, r.On)
}

// Upcoming lists overdue due dates followed by anniversaries and due dates
// at most leadDays away.
func Upcoming(events []storage.Event, today duration.Date, leadDays int) []Reminder {
	r := reports.Generate(events, today, leadDays)

	out := make([]Reminder, 0, len(r.Overdue)+len(r.Upcoming))
	for _, o := range r.Overdue {
		out = append(out, Reminder{
			EventID: o.EventID,
			Name:    o.Name,
			Kind:    reports.KindDue,
			On:      o.DueOn,
			InDays:  -o.DaysOverdue,
		})
	}
	for _, u := range r.Upcoming {
		out = append(out, Reminder{
			EventID: u.EventID,
			Name:    u.Name,
			Kind:    u.Kind,
			On:      u.On,
			InDays:  u.InDays,
			Years:   u.Years,
		})
	}
	return out
}

// Message builds the notification for a reminder.
func Message(r Reminder, sound bool) notify.Message {
	var body string
	switch {
	case r.Overdue():
		body = fmt.Sprintf("Overdue by %s (due %s)", days(-r.InDays), r.On)
	case r.Kind == reports.KindAnniversary && r.InDays == 0:
		body = "Anniversary today"
	case r.Kind == reports.KindAnniversary:
		body = fmt.Sprintf("Anniversary in %s (%s)", days(r.InDays), r.On)
	case r.InDays == 0:
		body = "Due today"
	default:
		body = fmt.Sprintf("Due in %s (%s)", days(r.InDays), r.On)
	}
	if r.Kind == reports.KindAnniversary && r.Years > 0 {
		body += ", " + plural(r.Years, "year")
	}

	return notify.Message{
		Title:  r.Name,
		Body:   body,
		Sound:  sound,
		Urgent: r.Overdue(),
	}
}

func days(n int) string { return plural(n, "day") }

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Scheduler re-reads the store on a cron schedule and notifies about
// reminders. Each reminder is sent at most once per day.
type Scheduler struct {
	store    *storage.Store
	notifier notify.Notifier
	cfg      config.ReminderConfig
	cron     *cron.Cron

	mu      sync.Mutex
	sentDay duration.Date
	sent    map[string]bool
}

// NewScheduler creates a scheduler. It does nothing until Start or Check.
func NewScheduler(store *storage.Store, notifier notify.Notifier, cfg config.ReminderConfig) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		cron:     cron.New(),
		sent:     make(map[string]bool),
	}
}

// Check reloads the store and sends every reminder not yet sent today.
// It returns the number of notifications delivered.
func (s *Scheduler) Check() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reload(); err != nil {
		return 0, fmt.Errorf("reload events: %w", err)
	}

	today := s.store.Today()
	if today != s.sentDay {
		s.sentDay = today
		s.sent = make(map[string]bool)
	}

	var (
		count int
		errs  []error
	)
	for _, r := range Upcoming(s.store.Events(), today, s.cfg.LeadDays) {
		if s.sent[r.key()] {
			continue
		}
		if err := s.notifier.Notify(Message(r, s.cfg.Sound)); err != nil {
			log.Error("reminder failed", err, "event", r.EventID)
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, err))
			continue
		}
		s.sent[r.key()] = true
		count++
	}

	log.Debug("reminders checked", "date", today.String(), "sent", count)
	return count, errors.Join(errs...)
}

// Start registers the check on the configured schedule and starts the cron
// runner in the background.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.Check(); err != nil {
			log.Error("reminder check failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	log.Info("reminder scheduler started", "schedule", s.cfg.Schedule, "lead_days", s.cfg.LeadDays)
	return nil
}

// Stop stops the cron runner and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("reminder scheduler stopped")
}

// Run checks once, then keeps checking on schedule until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()

	if _, err := s.Check(); err != nil {
		log.Error("reminder check failed", err)
	}

	<-ctx.Done()
	return nil
}
