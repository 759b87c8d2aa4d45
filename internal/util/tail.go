package util

import "sync"

// Tail is a fixed-capacity circular buffer of lines. When full, Append
// overwrites the oldest line. All methods are safe for concurrent use.
type Tail struct {
	mu    sync.RWMutex
	buf   []string
	head  int
	count int
}

// NewTail creates a tail buffer keeping the last capacity lines.
func NewTail(capacity int) *Tail {
	if capacity <= 0 {
		capacity = 100
	}
	return &Tail{buf: make([]string, capacity)}
}

// Append adds a line, overwriting the oldest if full.
func (t *Tail) Append(line string) {
	t.mu.Lock()
	idx := (t.head + t.count) % len(t.buf)
	t.buf[idx] = line
	if t.count == len(t.buf) {
		t.head = (t.head + 1) % len(t.buf)
	} else {
		t.count++
	}
	t.mu.Unlock()
}

// Lines returns a copy of all stored lines in order (oldest first).
func (t *Tail) Lines() []string {
	t.mu.RLock()
	out := make([]string, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	t.mu.RUnlock()
	return out
}

// Len returns the number of lines stored.
func (t *Tail) Len() int {
	t.mu.RLock()
	n := t.count
	t.mu.RUnlock()
	return n
}
