package notify

import (
	"os"
	"runtime"
	"testing"
)

func TestNew(t *testing.T) {
	n := New()
	if n == nil {
		t.Fatal("New() returned nil")
	}
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" && n.IsSupported() {
		t.Errorf("IsSupported() should be false on %s", runtime.GOOS)
	}
	if !n.IsSupported() {
		if err := n.Notify(Message{Title: "x"}); err != nil {
			t.Errorf("no-op Notify() error = %v", err)
		}
	}
}

// TestNotify shows a real notification; enable with RUN_NOTIFY_TESTS=1.
func TestNotify(t *testing.T) {
	if os.Getenv("RUN_NOTIFY_TESTS") != "1" {
		t.Skip("set RUN_NOTIFY_TESTS=1 to show a notification")
	}

	n := New()
	if !n.IsSupported() {
		t.Skip("notifications not supported on this platform")
	}
	if err := n.Notify(Message{Title: "dayssince test", Body: "3 days until anniversary"}); err != nil {
		t.Errorf("Notify() error = %v", err)
	}
}

func TestEscapeAppleScript(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "Hello"},
		{`Hello "World"`, `Hello \"World\"`},
		{`Path\to\file`, `Path\\to\\file`},
		{`Mix "quote" and \slash`, `Mix \"quote\" and \\slash`},
	}

	for _, tc := range tests {
		if got := escapeAppleScript(tc.input); got != tc.expected {
			t.Errorf("escapeAppleScript(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
