//go:build !linux && !darwin

package notify

import "log"

type logNotifier struct {
	appName string
}

// New returns a log-only notifier on platforms without a wired backend.
func New(appName string) Notifier {
	return &logNotifier{appName: appName}
}

func (n *logNotifier) Notify(title, body string) error {
	log.Printf("notification: %s: %s", title, body)
	return nil
}
