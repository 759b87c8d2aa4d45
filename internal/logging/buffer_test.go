package logging

import (
	"log"
	"testing"
)

func TestBufferSplitsLines(t *testing.T) {
	b := NewBuffer(10)

	b.Write([]byte("first line\nsecond "))
	b.Write([]byte("line\n"))

	got := b.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(got), got)
	}
	if got[0] != "first line" || got[1] != "second line" {
		t.Fatalf("unexpected lines: %v", got)
	}
}

func TestBufferSkipsBlankLines(t *testing.T) {
	b := NewBuffer(10)
	b.Write([]byte("\n   \nreal\n"))

	got := b.Snapshot()
	if len(got) != 1 || got[0] != "real" {
		t.Fatalf("unexpected lines: %v", got)
	}
}

func TestBufferWorksAsLogOutput(t *testing.T) {
	b := NewBuffer(10)

	l := log.New(b, "", 0)
	l.Println("hello from the logger")

	got := b.Snapshot()
	if len(got) != 1 || got[0] != "hello from the logger" {
		t.Fatalf("unexpected lines: %v", got)
	}
}

func TestBufferCapacity(t *testing.T) {
	b := NewBuffer(2)
	b.Write([]byte("a\nb\nc\n"))

	got := b.Snapshot()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("unexpected lines: %v", got)
	}
}
