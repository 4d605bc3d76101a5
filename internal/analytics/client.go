package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Client mirrors /start events to an external analytics endpoint
// (best-effort, never blocks or fails the user flow).
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client. If endpoint is empty, calls are no-ops.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// StartPayload is the body posted on each top-level /start.
type StartPayload struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// LogStart posts one start event. Failures are logged, never returned.
func (c *Client) LogStart(ctx context.Context, p StartPayload) {
	if c.endpoint == "" {
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		log.Printf("analytics: marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("analytics: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("analytics: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("analytics: status %d for user %d", resp.StatusCode, p.UserID)
	}
}

// LogStartAsync fires LogStart in its own goroutine with its own deadline so
// the /start handler never waits on the webhook.
func (c *Client) LogStartAsync(p StartPayload) {
	if c.endpoint == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.LogStart(ctx, p)
	}()
}
