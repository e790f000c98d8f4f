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

// HTTPMailer sends email through a Resend-compatible JSON API.
type HTTPMailer struct {
	APIURL     string
	APIKey     string
	From       string
	HTTPClient *http.Client
}

func NewHTTPMailer(apiURL, apiKey, from string, timeout time.Duration) *HTTPMailer {
	return &HTTPMailer{
		APIURL:     apiURL,
		APIKey:     apiKey,
		From:       from,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (m *HTTPMailer) SendEmail(ctx context.Context, email Email) error {
	if m.APIKey == "" || m.From == "" {
		return fmt.Errorf("email: provider not configured")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email: no recipients")
	}

	body, err := json.Marshal(emailRequest{
		From:    m.From,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Text:    email.Text,
	})
	if err != nil {
		return fmt.Errorf("email: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email: status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
