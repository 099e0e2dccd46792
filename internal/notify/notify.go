// Package notify reports the outcome of privileged writes on the desktop.
package notify

import (
	"fmt"

	"github.com/clambin/vantage/internal/panel"
	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"
)

const (
	destination = "org.freedesktop.Notifications"
	objectPath  = "/org/freedesktop/Notifications"
	method      = destination + ".Notify"
)

const (
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// caller is the part of dbus.BusObject used by Notifier
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier sends desktop notifications through the session bus.
type Notifier struct {
	AppName string
	Icon    string
	Timeout int32
	object  caller
}

// New connects to the session bus.
func New(appName string) (*Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return newWithObject(appName, conn.Object(destination, objectPath)), nil
}

func newWithObject(appName string, object caller) *Notifier {
	return &Notifier{
		AppName: appName,
		Icon:    "preferences-system",
		Timeout: 5000,
		object:  object,
	}
}

// Notify shows a notification. Critical notifications stay on screen until dismissed.
func (n *Notifier) Notify(summary, body string, critical bool) error {
	urgency := urgencyNormal
	if critical {
		urgency = urgencyCritical
	}
	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}
	call := n.object.Call(method, 0, n.AppName, uint32(0), n.Icon, summary, body, []string{}, hints, n.Timeout)
	return call.Err
}

// Observe notifies the outcome of each write.
func (n *Notifier) Observe(e panel.Event) {
	var err error
	switch e.Phase {
	case panel.Applied:
		err = n.Notify("Setting applied", "Switched to "+e.Setting.String(), false)
	case panel.Rejected:
		err = n.Notify("Setting not applied", "Unable to switch to "+e.Setting.String(), true)
	default:
		return
	}
	if err != nil {
		log.WithError(err).Debug("failed to send notification")
	}
}
