//go:build !linux && !darwin

package autostart

type unsupportedManager struct{}

// New returns a stub manager; the tray checkbox reports the error instead
// of toggling anything.
func New(appName, execPath string) (Manager, error) {
	return unsupportedManager{}, nil
}

func (unsupportedManager) IsEnabled() (bool, error) { return false, nil }
func (unsupportedManager) Enable() error            { return ErrUnsupported }
func (unsupportedManager) Disable() error           { return ErrUnsupported }
