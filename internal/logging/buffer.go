package logging

import (
	"bytes"
	"strings"
	"sync"

	"github.com/vwork-app/vwork-desktop/internal/util"
)

// Buffer keeps the most recent log lines in memory so the shell can show
// them on the loading page while the server is still coming up.
// It implements io.Writer for log.SetOutput / io.MultiWriter.
type Buffer struct {
	mu      sync.Mutex
	lines   *util.Tail
	partial bytes.Buffer
}

// NewBuffer creates a buffer keeping the last max lines.
func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = 500
	}
	return &Buffer{lines: util.NewTail(max)}
}

// Write splits incoming bytes into lines; incomplete trailing data is held
// back until the next write completes it.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.partial.Write(p)

	for {
		data := b.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i == -1 {
			break
		}

		line := string(data[:i])
		b.partial.Next(i + 1)

		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.lines.Append(line)
	}

	return len(p), nil
}

// Snapshot returns the buffered lines, oldest first.
func (b *Buffer) Snapshot() []string {
	return b.lines.Lines()
}
