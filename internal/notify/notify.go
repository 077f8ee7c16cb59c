// Package notify sends desktop notifications through the platform's native
// tool: notify-send on Linux and osascript on macOS.
package notify

import "strings"

const appName = "dayssince"

// Message is one desktop notification.
type Message struct {
	Title string
	Body  string
	// Sound asks the platform to play its default notification sound.
	Sound bool
	// Urgent marks overdue items; notification daemons may keep them visible.
	Urgent bool
}

// Notifier delivers desktop notifications.
type Notifier interface {
	Notify(msg Message) error

	// IsSupported reports whether the platform tool is available.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Notify(Message) error { return nil }
func (noopNotifier) IsSupported() bool    { return false }

// New returns the platform notifier, or a no-op notifier when the platform
// has no supported mechanism.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// escapeAppleScript escapes backslashes and quotes for AppleScript strings.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
