//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return linuxNotifier{}
}

func (linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (linuxNotifier) Notify(msg Message) error {
	cmd := exec.Command("notify-send", notifySendArgs(msg)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

func notifySendArgs(msg Message) []string {
	args := []string{"--app-name=" + appName}
	if msg.Urgent {
		args = append(args, "--urgency=critical")
	} else {
		args = append(args, "--urgency=normal")
	}
	// Sound depends on the notification daemon honoring the hint.
	if msg.Sound {
		args = append(args, "--hint=string:sound-name:message-new-instant")
	}
	return append(args, msg.Title, msg.Body)
}
