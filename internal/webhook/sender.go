package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// EventAlertFired is sent when an alert rule trips for a session
const EventAlertFired = "alert.fired"

const defaultTimeout = 10 * time.Second

// EventPayload is the body posted to the configured endpoint
type EventPayload struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	SessionID uuid.UUID   `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// Sender posts signed events to a single operator-configured endpoint.
// Failures are returned to the caller; alerts are already persisted, so a
// lost delivery is recoverable from the session report.
type Sender struct {
	url    string
	secret string
	client *http.Client
}

func NewSender(url, secret string) *Sender {
	return &Sender{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts the event, signing the body with the shared secret
func (s *Sender) Send(ctx context.Context, event EventPayload) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	signature := Sign(s.secret, payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Vigia-Signature", signature)
	req.Header.Set("X-Vigia-Event", event.Type)
	req.Header.Set("User-Agent", "Vigia-Webhook/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook endpoint returned HTTP %d", resp.StatusCode)
	}

	return nil
}
