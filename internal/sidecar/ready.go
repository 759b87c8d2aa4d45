package sidecar

import (
	"fmt"
	"net"
	"time"
)

const (
	// DefaultPort is the loopback port the bundled server listens on.
	DefaultPort = 3141

	// DefaultStartupTimeout bounds the whole readiness wait.
	DefaultStartupTimeout = 15 * time.Second

	// connectTimeout is the budget for a single probe attempt.
	connectTimeout = 1 * time.Second

	// pollInterval is the pause between failed probes.
	pollInterval = 200 * time.Millisecond

	// settleDelay is slept after the first accepted connection. Some
	// servers accept before their router is fully initialized; declaring
	// readiness immediately would hand the webview a half-up server.
	settleDelay = 300 * time.Millisecond
)

// WaitReady polls TCP on 127.0.0.1:<port> until the server accepts a
// connection or the timeout expires. The probe dials the numeric loopback
// address to keep DNS out of the picture; only the webview URL uses the
// "localhost" spelling. Readiness is TCP acceptance, never an HTTP
// exchange, and a dead child simply shows up as connect failures until
// the deadline.
func WaitReady(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	start := time.Now()

	for time.Since(start) < timeout {
		c, err := net.DialTimeout("tcp", addr, connectTimeout)
		if err == nil {
			_ = c.Close()
			time.Sleep(settleDelay)
			return nil
		}
		time.Sleep(pollInterval)
	}

	return fmt.Errorf("server did not accept on %s within %s", addr, timeout)
}
