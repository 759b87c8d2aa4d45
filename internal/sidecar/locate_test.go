package sidecar

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFakeBinary(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return serverName + ".exe"
	}
	return serverName
}

func TestLocatePackagedLayout(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, binaryName())
	writeFakeBinary(t, want)

	got, err := Locate(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLocateDevLayout(t *testing.T) {
	root := t.TempDir()
	exeDir := filepath.Join(root, "target", "debug")
	if err := os.MkdirAll(exeDir, 0o755); err != nil {
		t.Fatal(err)
	}

	dev := filepath.Join(root, "binaries", serverName+"-"+targetTriple)
	writeFakeBinary(t, dev)

	got, err := Locate(exeDir)
	if err != nil {
		t.Fatal(err)
	}
	// Locate returns the joined (uncleaned) candidate; compare resolved paths.
	if filepath.Clean(got) != dev {
		t.Fatalf("expected %q, got %q", dev, got)
	}
}

func TestLocatePackagedWinsOverDev(t *testing.T) {
	root := t.TempDir()
	exeDir := filepath.Join(root, "target", "debug")

	packaged := filepath.Join(exeDir, binaryName())
	writeFakeBinary(t, packaged)
	writeFakeBinary(t, filepath.Join(root, "binaries", serverName+"-"+targetTriple))

	got, err := Locate(exeDir)
	if err != nil {
		t.Fatal(err)
	}
	if got != packaged {
		t.Fatalf("expected packaged path %q, got %q", packaged, got)
	}
}

func TestLocateNotFoundNamesBothCandidates(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir)
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !strings.Contains(msg, filepath.Join(dir, binaryName())) {
		t.Fatalf("error does not name the packaged candidate: %s", msg)
	}
	if !strings.Contains(msg, "binaries") || !strings.Contains(msg, targetTriple) {
		t.Fatalf("error does not name the dev candidate: %s", msg)
	}
}

func TestIsDevLayout(t *testing.T) {
	if !IsDevLayout("/proj/binaries/vwork-server-linux-amd64") {
		t.Fatal("expected dev layout")
	}
	if IsDevLayout("/opt/vwork/vwork-server") {
		t.Fatal("expected packaged layout")
	}
}
