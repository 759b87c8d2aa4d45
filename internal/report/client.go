// Package report triggers report generation on the VWork server over its
// local HTTP API.
package report

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client calls the server's report endpoint. One shot, no retry: the user
// can always click the menu item again.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the server on the given loopback port.
func New(port int) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Run POSTs /api/report/run with an empty JSON body. A request id header is
// attached so the shell log line can be matched against the server's.
func (c *Client) Run(ctx context.Context) error {
	url := c.baseURL + "/api/report/run"
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("{}"))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log.Printf("report trigger %s (request %s)", url, reqID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("report request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
