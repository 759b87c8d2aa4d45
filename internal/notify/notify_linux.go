package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyInterface = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
)

type dbusNotifier struct {
	appName string
}

// New returns a notifier backed by org.freedesktop.Notifications on the
// session bus.
func New(appName string) Notifier {
	return &dbusNotifier{appName: appName}
}

func (n *dbusNotifier) Notify(title, body string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}

	call := conn.Object(notifyInterface, notifyPath).Call(
		notifyInterface+".Notify", 0,
		n.appName,
		uint32(0), // no notification to replace
		"",        // no icon
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(-1), // server-default expiry
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}
