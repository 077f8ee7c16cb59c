//go:build !darwin && !linux

package notify

// newPlatformNotifier has nothing to offer on other platforms; New falls
// back to the no-op notifier.
func newPlatformNotifier() Notifier {
	return nil
}
