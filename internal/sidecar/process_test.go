//go:build !windows

package sidecar

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// writeScript creates an executable shell script standing in for the server
// binary. The script receives the real argv ("serve --port N") and ignores it.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vwork-server")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSpawnMissingBinary(t *testing.T) {
	_, err := Spawn(filepath.Join(t.TempDir(), "nope"), 3141)
	if err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

func TestSpawnForwardsOutput(t *testing.T) {
	script := writeScript(t, `echo "listening"; echo "oops" >&2; sleep 30`)

	p, err := Spawn(script, 3141)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = p.Kill()
		<-p.Done()
	}()

	deadline := time.After(5 * time.Second)
	for {
		lines := p.OutputTail()
		if containsLine(lines, "listening") && containsLine(lines, "oops") {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("output not captured, tail: %v", lines)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestKillReapsChild(t *testing.T) {
	script := writeScript(t, `sleep 30`)

	p, err := Spawn(script, 3141)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Kill(); err != nil {
		t.Fatal(err)
	}

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child was not reaped after kill")
	}

	if _, exited := p.ExitError(); !exited {
		t.Fatal("exit status not recorded")
	}
}

func TestReaperObservesNaturalExit(t *testing.T) {
	script := writeScript(t, `exit 0`)

	p, err := Spawn(script, 3141)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("natural exit not observed")
	}

	if err, _ := p.ExitError(); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
}

func TestSlotTerminateIdempotent(t *testing.T) {
	script := writeScript(t, `sleep 30`)

	p, err := Spawn(script, 3141)
	if err != nil {
		t.Fatal(err)
	}

	var slot Slot
	if err := slot.Put(p); err != nil {
		t.Fatal(err)
	}

	// Double-quit: two concurrent terminates must not double-kill.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot.Terminate()
		}()
	}
	wg.Wait()

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child not reaped")
	}
	if got := slot.Take(); got != nil {
		t.Fatal("slot should be empty after terminate")
	}

	// Terminating an already-empty slot is a no-op.
	slot.Terminate()
}

func TestSlotRejectsSecondPut(t *testing.T) {
	script := writeScript(t, `sleep 30`)

	p, err := Spawn(script, 3141)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = p.Kill()
		<-p.Done()
	}()

	var slot Slot
	if err := slot.Put(p); err != nil {
		t.Fatal(err)
	}
	if err := slot.Put(p); err == nil {
		t.Fatal("expected second Put to fail")
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
