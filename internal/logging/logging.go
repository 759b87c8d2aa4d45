// Package logging routes shell logs to stderr, a per-user log file and an
// in-memory line buffer at the same time.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the conventional log directory for the current OS.
// Falls back to a temporary directory when a platform path cannot be resolved.
func Dir(appName string) string {
	fallback := filepath.Join(os.TempDir(), appName, "logs")

	switch runtime.GOOS {
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Logs", appName)
		}
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName, "logs")
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "."+appName, "logs")
		}
	}

	return fallback
}

// Setup points the standard logger at stderr, <logdir>/shell.log and the
// given buffer. Returns a close function for the log file.
func Setup(appName string, buf *Buffer) (func(), error) {
	writers := []io.Writer{os.Stderr}
	if buf != nil {
		writers = append(writers, buf)
	}

	var closeFn = func() {}

	dir := Dir(appName)
	if err := os.MkdirAll(dir, 0o755); err == nil {
		f, ferr := os.OpenFile(filepath.Join(dir, "shell.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr == nil {
			writers = append(writers, f)
			closeFn = func() { _ = f.Close() }
		} else {
			log.Printf("log file unavailable: %v", ferr)
		}
	} else {
		log.Printf("log dir unavailable: %v", err)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return closeFn, nil
}
