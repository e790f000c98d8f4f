package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookAlertSender posts alerts as Discord-style embeds to a webhook URL.
type WebhookAlertSender struct {
	URL        string
	HTTPClient *http.Client
	now        func() time.Time
}

func NewWebhookAlertSender(url string, timeout time.Duration) *WebhookAlertSender {
	return &WebhookAlertSender{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type webhookEmbed struct {
	Title     string        `json:"title"`
	Color     int           `json:"color"`
	Fields    []AlertField  `json:"fields"`
	Footer    webhookFooter `json:"footer"`
	Timestamp string        `json:"timestamp"`
}

type webhookFooter struct {
	Text string `json:"text"`
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

func (s *WebhookAlertSender) SendAlert(ctx context.Context, alert Alert) error {
	if s.URL == "" {
		return fmt.Errorf("webhook alert: no webhook URL configured")
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	body, err := json.Marshal(webhookPayload{Embeds: []webhookEmbed{{
		Title:     alert.Title,
		Color:     alert.Color,
		Fields:    alert.Fields,
		Footer:    webhookFooter{Text: alert.Footer},
		Timestamp: now().UTC().Format(time.RFC3339),
	}}})
	if err != nil {
		return fmt.Errorf("webhook alert: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook alert: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook alert: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook alert: status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
