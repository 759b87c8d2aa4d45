// Package notify shows desktop notifications using whatever the platform
// offers natively. Failures are logged, never surfaced to the user.
package notify

// Notifier shows a desktop notification with a title and body.
type Notifier interface {
	Notify(title, body string) error
}
