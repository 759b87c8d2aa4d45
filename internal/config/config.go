package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vwork-app/vwork-desktop/internal/util"
)

type Config struct {
	Server Server `json:"server"`
	Window Window `json:"window"`
}

type Server struct {
	// Loopback port the bundled VWork server listens on. Read once at
	// startup; the port never changes for the lifetime of the process.
	Port int `json:"port"`

	// Seconds to wait for the server to accept TCP connections before
	// giving up on navigating the window.
	StartupTimeoutSec int `json:"startup_timeout_seconds"`
}

type Window struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// When true, closing the window hides it instead of quitting, leaving
	// the app resident in the tray. Only honoured on macOS.
	HideOnClose bool `json:"hide_on_close"`
}

func Default() Config {
	return Config{
		Server: Server{
			Port:              3141,
			StartupTimeoutSec: 15,
		},
		Window: Window{
			Width:       1200,
			Height:      800,
			HideOnClose: true,
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}
	if c.Server.StartupTimeoutSec < 1 || c.Server.StartupTimeoutSec > 300 {
		return errors.New("server.startup_timeout_seconds must be 1..300")
	}
	if c.Window.Width < 320 || c.Window.Height < 240 {
		return errors.New("window size must be at least 320x240")
	}
	return nil
}

// Path returns the per-user config file location.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "vwork", "config.json"), nil
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	// Strip UTF-8 BOM if present (common when editing JSON on Windows).
	b = stripBOM(b)

	// Start from defaults so missing JSON fields remain initialized.
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// stripBOM removes a UTF-8 byte order mark if present.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	return util.WriteJSONFile(path, cfg)
}

// Ensure loads config if it exists; otherwise creates a default config file.
// Returns (cfg, createdNew, err).
func Ensure(path string) (Config, bool, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := Load(path)
		return cfg, false, err
	} else if !os.IsNotExist(err) {
		return Config{}, false, err
	}

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return Config{}, false, fmt.Errorf("create default config: %w", err)
	}
	return cfg, true, nil
}
