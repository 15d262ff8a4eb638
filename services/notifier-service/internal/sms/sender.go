package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers a short text message.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// WebhookSender posts to an SMS gateway webhook. The gateway contract is
// a JSON body {"to": "...", "message": "..."} answered with a 2xx.
type WebhookSender struct {
	URL    string
	client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *WebhookSender) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{"to": phone, "message": message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}

// NoopSender drops messages; used when no gateway is configured.
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, string) error { return nil }
