package sidecar

import (
	"errors"
	"log"
	"sync"
	"time"
)

// reapGrace bounds how long Terminate waits for the exit status after the
// kill signal, so a stuck reap cannot hang shutdown forever.
const reapGrace = 5 * time.Second

// Slot is the process-wide cell holding at most one server process.
// It is filled once on a successful spawn and drained exactly once by
// Terminate; it is never refilled.
type Slot struct {
	mu sync.Mutex
	p  *Process
}

// Put stores the process. Fails if the slot is already occupied.
func (s *Slot) Put(p *Process) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p != nil {
		return errors.New("slot already holds a process")
	}
	s.p = p
	return nil
}

// Take removes and returns the process, or nil if the slot is empty.
// At most one caller ever observes a non-nil result.
func (s *Slot) Take() *Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.p
	s.p = nil
	return p
}

// Terminate drains the slot and, if a process was held, kills and reaps it.
// Safe to call from any goroutine and any number of times; only the caller
// that wins the take performs the kill. The slot lock is never held across
// the kill and wait.
func (s *Slot) Terminate() {
	p := s.Take()
	if p == nil {
		return
	}

	log.Printf("stopping server process (pid %d)", p.PID())
	if err := p.Kill(); err != nil {
		// Best effort: kill after natural exit fails, which is fine as
		// long as the reaper has collected the status.
		log.Printf("kill server process: %v", err)
	}

	select {
	case <-p.Done():
	case <-time.After(reapGrace):
		log.Printf("server process did not reap within %s", reapGrace)
	}
}
