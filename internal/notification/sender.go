package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender relays a rendered message to the outbound WhatsApp channel.
type Sender interface {
	Send(ctx context.Context, phone, message, correlationID string) error
}

// WebhookSender posts to the n8n relay webhook that forwards messages to
// the Evolution API. Delivery is at-most-once: a non-200 answer or a
// timeout is a failed send, never retried here.
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type webhookPayload struct {
	Phone         string `json:"phone"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
	Timestamp     string `json:"timestamp"`
}

func (s *WebhookSender) Send(ctx context.Context, phone, message, correlationID string) error {
	body, err := json.Marshal(webhookPayload{
		Phone:         phone,
		Message:       message,
		CorrelationID: correlationID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
