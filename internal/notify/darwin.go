//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return darwinNotifier{}
}

func (darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (darwinNotifier) Notify(msg Message) error {
	cmd := exec.Command("osascript", "-e", appleScript(msg))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

func appleScript(msg Message) string {
	script := fmt.Sprintf(`display notification "%s" with title "%s" subtitle "%s"`,
		escapeAppleScript(msg.Body), escapeAppleScript(msg.Title), appName)
	if msg.Sound {
		script += ` sound name "default"`
	}
	return script
}
