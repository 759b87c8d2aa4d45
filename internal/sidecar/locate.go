// Package sidecar owns the lifecycle of the bundled VWork server process:
// finding the binary, spawning it, waiting for it to accept connections and
// making sure it is killed when the shell exits.
package sidecar

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// serverName is the base name of the bundled server binary.
const serverName = "vwork-server"

// targetTriple identifies the build platform for the development layout.
// Overridden at build time via -ldflags "-X .../internal/sidecar.targetTriple=...".
var targetTriple = runtime.GOOS + "-" + runtime.GOARCH

// Locate resolves the server binary relative to the given executable
// directory. In a packaged install the binary sits next to the shell
// executable; in a development tree it lives under ../../binaries with a
// platform suffix.
func Locate(exeDir string) (string, error) {
	name := serverName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	packaged := filepath.Join(exeDir, name)
	if _, err := os.Stat(packaged); err == nil {
		return packaged, nil
	}

	dev := filepath.Join(exeDir, "..", "..", "binaries",
		fmt.Sprintf("%s-%s", serverName, targetTriple))
	if _, err := os.Stat(dev); err == nil {
		return dev, nil
	}

	return "", fmt.Errorf("server binary not found at %q or %q", packaged, dev)
}

// Find locates the server binary relative to the running executable.
func Find() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return Locate(filepath.Dir(exe))
}

// IsDevLayout reports whether path points into the development binaries dir.
func IsDevLayout(path string) bool {
	return filepath.Base(filepath.Dir(path)) == "binaries"
}
