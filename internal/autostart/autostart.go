// Package autostart installs and removes the per-user launch-at-login entry
// for the shell.
package autostart

import "errors"

// ErrUnsupported is returned on platforms without a wired backend.
var ErrUnsupported = errors.New("autostart is not supported on this platform")

// Manager toggles the launch-at-login entry for the current user.
type Manager interface {
	IsEnabled() (bool, error)
	Enable() error
	Disable() error
}
