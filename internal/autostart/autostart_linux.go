package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

// xdgManager writes a freedesktop autostart entry under the user config dir.
type xdgManager struct {
	configDir string
	appName   string
	execPath  string
}

// New returns a manager installing an XDG autostart desktop entry.
func New(appName, execPath string) (Manager, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &xdgManager{configDir: base, appName: appName, execPath: execPath}, nil
}

// newWithConfigDir exists for tests.
func newWithConfigDir(configDir, appName, execPath string) Manager {
	return &xdgManager{configDir: configDir, appName: appName, execPath: execPath}
}

func (m *xdgManager) entryPath() string {
	return filepath.Join(m.configDir, "autostart", m.appName+".desktop")
}

func (m *xdgManager) IsEnabled() (bool, error) {
	_, err := os.Stat(m.entryPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (m *xdgManager) Enable() error {
	path := m.entryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
`, m.appName, m.execPath)

	return os.WriteFile(path, []byte(entry), 0o644)
}

func (m *xdgManager) Disable() error {
	err := os.Remove(m.entryPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
