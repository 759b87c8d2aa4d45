package sidecar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchBinaryReportsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vwork-server-"+targetTriple)
	if err := os.WriteFile(path, []byte("old build"), 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	err := WatchBinary(ctx, path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	// Give the watcher a moment to register before rewriting.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("new build"), 0o755); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("rewrite not observed")
	}
}

func TestWatchBinaryIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vwork-server-"+targetTriple)
	if err := os.WriteFile(path, []byte("build"), 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	if err := WatchBinary(ctx, path, func() { changed <- struct{}{} }); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other-file"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Fatal("unrelated file triggered the watcher")
	case <-time.After(300 * time.Millisecond):
	}
}
