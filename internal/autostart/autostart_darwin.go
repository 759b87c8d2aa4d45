package autostart

import (
	"os"
	"path/filepath"

	"howett.net/plist"
)

// launchAgent is the subset of the launchd plist schema we emit.
type launchAgent struct {
	Label            string   `plist:"Label"`
	ProgramArguments []string `plist:"ProgramArguments"`
	RunAtLoad        bool     `plist:"RunAtLoad"`
}

type launchdManager struct {
	agentsDir string
	label     string
	execPath  string
}

// New returns a manager installing a per-user LaunchAgent.
func New(appName, execPath string) (Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &launchdManager{
		agentsDir: filepath.Join(home, "Library", "LaunchAgents"),
		label:     "com." + appName + ".desktop",
		execPath:  execPath,
	}, nil
}

// newWithAgentsDir exists for tests.
func newWithAgentsDir(agentsDir, appName, execPath string) Manager {
	return &launchdManager{
		agentsDir: agentsDir,
		label:     "com." + appName + ".desktop",
		execPath:  execPath,
	}
}

func (m *launchdManager) plistPath() string {
	return filepath.Join(m.agentsDir, m.label+".plist")
}

func (m *launchdManager) IsEnabled() (bool, error) {
	_, err := os.Stat(m.plistPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (m *launchdManager) Enable() error {
	if err := os.MkdirAll(m.agentsDir, 0o755); err != nil {
		return err
	}

	agent := launchAgent{
		Label:            m.label,
		ProgramArguments: []string{m.execPath},
		RunAtLoad:        true,
	}
	b, err := plist.MarshalIndent(agent, plist.XMLFormat, "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(m.plistPath(), b, 0o644)
}

func (m *launchdManager) Disable() error {
	err := os.Remove(m.plistPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
