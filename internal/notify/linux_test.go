//go:build linux

package notify

import (
	"strings"
	"testing"
)

func TestNotifySendArgs(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "plain",
			msg:  Message{Title: "Birthday", Body: "0 days until anniversary"},
			want: "--app-name=dayssince --urgency=normal Birthday 0 days until anniversary",
		},
		{
			name: "urgent with sound",
			msg:  Message{Title: "Passport", Body: "overdue", Urgent: true, Sound: true},
			want: "--app-name=dayssince --urgency=critical --hint=string:sound-name:message-new-instant Passport overdue",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(notifySendArgs(tt.msg), " "); got != tt.want {
				t.Errorf("notifySendArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}
