package sidecar

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/vwork-app/vwork-desktop/internal/util"
)

// outputTailLines is how many recent lines of server output are kept for
// diagnostics when the process dies unexpectedly.
const outputTailLines = 50

// Process is an owning handle to a spawned server. Exactly one reaper
// goroutine waits on the child; Done is closed once the exit status has
// been collected.
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}
	tail *util.Tail

	mu      sync.Mutex
	exitErr error
	exited  bool
}

// Spawn starts the server binary as `<path> serve --port <port>`. The
// child's stdout and stderr are re-emitted line by line on the shell's own
// streams and the tail is retained. No stdin is provided. Spawn does not
// wait for the server to become ready.
func Spawn(path string, port int) (*Process, error) {
	cmd := exec.Command(path, "serve", "--port", strconv.Itoa(port))
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %q: %w", path, err)
	}

	p := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
		tail: util.NewTail(outputTailLines),
	}

	var forwarders sync.WaitGroup
	forwarders.Add(2)
	go p.forward(stdout, os.Stdout, &forwarders)
	go p.forward(stderr, os.Stderr, &forwarders)

	go p.reap(&forwarders)

	return p, nil
}

// forward copies child output to dst one line at a time, verbatim, keeping
// a copy in the tail buffer. Returns when the child closes its end.
func (p *Process) forward(src io.Reader, dst io.Writer, wg *sync.WaitGroup) {
	defer wg.Done()
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		p.tail.Append(line)
		fmt.Fprintln(dst, line)
	}
}

// reap waits for the forwarders to drain, then collects the exit status.
// This is the only Wait call on the child.
func (p *Process) reap(forwarders *sync.WaitGroup) {
	forwarders.Wait()
	err := p.cmd.Wait()

	p.mu.Lock()
	p.exited = true
	p.exitErr = err
	p.mu.Unlock()

	if err != nil {
		log.Printf("server process terminated: %v", err)
		for _, line := range p.tail.Lines() {
			log.Printf("server output | %s", line)
		}
	} else {
		log.Printf("server process exited cleanly")
	}

	close(p.done)
}

// Kill sends a kill signal to the child. Reaping happens on the reaper
// goroutine; use Done to observe it.
func (p *Process) Kill() error {
	return p.cmd.Process.Kill()
}

// Done is closed once the child has exited and been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// ExitError returns the Wait result once the child has exited.
func (p *Process) ExitError() (error, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitErr, p.exited
}

// PID returns the OS process id of the child.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// OutputTail returns the most recent lines of child output, oldest first.
func (p *Process) OutputTail() []string {
	return p.tail.Lines()
}
