package ga4

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/tracking"
)

// Client sends events through the GA4 Measurement Protocol. It implements
// tracking.Binding.
type Client struct {
	endpoint      string
	measurementID string
	apiSecret     string
	timeout       time.Duration
	httpClient    *http.Client
	log           *logger.Logger
}

var _ tracking.Binding = (*Client)(nil)

type event struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type payload struct {
	ClientID string  `json:"client_id"`
	Events   []event `json:"events"`
}

// NewClient creates a new Measurement Protocol client
func NewClient(endpoint, measurementID, apiSecret string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		endpoint:      endpoint,
		measurementID: measurementID,
		apiSecret:     apiSecret,
		timeout:       timeout,
		httpClient:    &http.Client{Timeout: timeout},
		log:           log,
	}
}

// Dispatch sends the command in the background. Failures are logged only.
func (c *Client) Dispatch(clientID, command, target string, params map[string]any) {
	name := target
	if command == tracking.CommandConfig {
		name = "page_view"
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Send(ctx, clientID, name, params); err != nil {
			c.log.Warnw("analytics event not delivered", "event", name, "error", err)
		}
	}()
}

// Send posts a single event and waits for the answer.
func (c *Client) Send(ctx context.Context, clientID, name string, params map[string]any) error {
	if clientID == "" {
		clientID = uuid.NewString()
	}

	body, err := json.Marshal(payload{
		ClientID: clientID,
		Events:   []event{{Name: name, Params: params}},
	})
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	q := url.Values{}
	q.Set("measurement_id", c.measurementID)
	q.Set("api_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("error from measurement protocol: status %d", resp.StatusCode)
	}
	return nil
}
