package notify

import (
	"errors"
	"testing"

	"github.com/clambin/vantage/internal/ideapad"
	"github.com/clambin/vantage/internal/panel"
	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	calls [][]interface{}
	err   error
}

func (f *fakeObject) Call(method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, append([]interface{}{method}, args...))
	return &dbus.Call{Err: f.err}
}

func TestNotifier_Observe(t *testing.T) {
	tests := []struct {
		name        string
		event       panel.Event
		wantCalls   int
		wantSummary string
		wantBody    string
		wantUrgency byte
	}{
		{
			name:        "applied",
			event:       panel.Event{Setting: ideapad.ConservationMode(true), Phase: panel.Applied},
			wantCalls:   1,
			wantSummary: "Setting applied",
			wantBody:    "Switched to conservation mode on",
			wantUrgency: urgencyNormal,
		},
		{
			name:        "rejected",
			event:       panel.Event{Setting: ideapad.Fan(ideapad.DustCleaning), Phase: panel.Rejected, Err: errors.New("fail")},
			wantCalls:   1,
			wantSummary: "Setting not applied",
			wantBody:    "Unable to switch to dust-cleaning fan",
			wantUrgency: urgencyCritical,
		},
		{
			name:  "writing",
			event: panel.Event{Setting: ideapad.Fan(ideapad.Standard), Phase: panel.Writing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := fakeObject{}
			n := newWithObject("vantage", &o)

			n.Observe(tt.event)
			require.Len(t, o.calls, tt.wantCalls)
			if tt.wantCalls == 0 {
				return
			}
			call := o.calls[0]
			assert.Equal(t, "org.freedesktop.Notifications.Notify", call[0])
			assert.Equal(t, "vantage", call[1])
			assert.Equal(t, tt.wantSummary, call[4])
			assert.Equal(t, tt.wantBody, call[5])
			hints := call[7].(map[string]dbus.Variant)
			assert.Equal(t, tt.wantUrgency, hints["urgency"].Value())
			assert.Equal(t, int32(5000), call[8])
		})
	}
}

func TestNotifier_Notify_Error(t *testing.T) {
	n := newWithObject("vantage", &fakeObject{err: errors.New("no notification daemon")})
	assert.Error(t, n.Notify("summary", "body", false))
	n.Observe(panel.Event{Phase: panel.Applied})
}
