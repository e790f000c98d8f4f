package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"washdesk/config"
	"washdesk/models"
)

func TestWebhookAlertSender(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewWebhookAlertSender(srv.URL, time.Second)
	sender.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	err := sender.SendAlert(context.Background(), Alert{
		Title:  "New Booking Request",
		Color:  colorWebBooking,
		Fields: []AlertField{{Name: "Name", Value: "Jane", Inline: true}},
		Footer: "Booking ID: b-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Title != "New Booking Request" || e.Footer.Text != "Booking ID: b-1" || e.Timestamp != "2024-06-01T12:00:00Z" {
		t.Fatalf("unexpected embed: %+v", e)
	}
	if len(e.Fields) != 1 || e.Fields[0].Value != "Jane" {
		t.Fatalf("fields = %+v", e.Fields)
	}
}

func TestWebhookAlertSenderErrors(t *testing.T) {
	if err := NewWebhookAlertSender("", time.Second).SendAlert(context.Background(), Alert{}); err == nil {
		t.Fatal("expected error without URL")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad embed", http.StatusBadRequest)
	}))
	defer srv.Close()
	err := NewWebhookAlertSender(srv.URL, time.Second).SendAlert(context.Background(), Alert{Title: "x"})
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTPMailer(t *testing.T) {
	var got emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer re_test" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	mailer := NewHTTPMailer(srv.URL, "re_test", "bookings@tideline.example", time.Second)
	err := mailer.SendEmail(context.Background(), Email{
		To:      []string{"owner@tideline.example"},
		ReplyTo: "jane@x.com",
		Subject: "New Booking",
		Text:    "body",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.From != "bookings@tideline.example" || got.ReplyTo != "jane@x.com" || len(got.To) != 1 || got.Text != "body" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestHTTPMailerErrors(t *testing.T) {
	ctx := context.Background()
	if err := NewHTTPMailer("http://unused", "", "from@x", time.Second).SendEmail(ctx, Email{To: []string{"a@x"}}); err == nil {
		t.Fatal("expected error without API key")
	}
	if err := NewHTTPMailer("http://unused", "key", "from@x", time.Second).SendEmail(ctx, Email{}); err == nil {
		t.Fatal("expected error without recipients")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"domain not verified"}`, http.StatusForbidden)
	}))
	defer srv.Close()
	err := NewHTTPMailer(srv.URL, "key", "from@x", time.Second).SendEmail(ctx, Email{To: []string{"a@x"}})
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status error, got %v", err)
	}
}

type recordingAlerts struct {
	mu     sync.Mutex
	alerts []Alert
	err    error
	ctxErr error
}

func (r *recordingAlerts) SendAlert(ctx context.Context, a Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	r.ctxErr = ctx.Err()
	return r.err
}

type recordingMailer struct {
	mu     sync.Mutex
	emails []Email
	err    error
}

func (r *recordingMailer) SendEmail(_ context.Context, e Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, e)
	return r.err
}

func TestNewDefaultNotificationService(t *testing.T) {
	if _, err := NewDefaultNotificationService(nil, &recordingMailer{}, config.Persona{}, "", 0, nil); err == nil {
		t.Fatal("expected error for nil alert sender")
	}
	svc, err := NewDefaultNotificationService(&recordingAlerts{}, &recordingMailer{}, config.Persona{}, " a@x.com, ,b@x.com ", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(svc.Inbox, "|") != "a@x.com|b@x.com" {
		t.Fatalf("inbox = %v", svc.Inbox)
	}
}

func TestBookingCreatedNotifiesBothChannels(t *testing.T) {
	alerts := &recordingAlerts{}
	mail := &recordingMailer{}
	svc, err := NewDefaultNotificationService(alerts, mail, config.DefaultPersona(), "owner@x.com", time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}

	svc.BookingCreated(context.Background(), models.Booking{
		ID:      "b-1",
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Service: "roof-cleaning",
		Source:  models.BookingSourceChat,
	})

	if len(alerts.alerts) != 1 || len(mail.emails) != 1 {
		t.Fatalf("alerts = %d, emails = %d", len(alerts.alerts), len(mail.emails))
	}
	a := alerts.alerts[0]
	if a.Title != "New Booking via AI Chat" || a.Color != colorChatBooking || a.Footer != "Booking ID: b-1" {
		t.Fatalf("unexpected alert: %+v", a)
	}
	e := mail.emails[0]
	if e.Subject != "New Booking: Roof Cleaning - Jane Doe" || e.ReplyTo != "jane@x.com" {
		t.Fatalf("unexpected email: %+v", e)
	}
	if !strings.Contains(e.Text, "Notes: -") {
		t.Fatalf("empty notes should render as a dash: %q", e.Text)
	}
}

func TestDispatchSwallowsFailuresAndIgnoresCancellation(t *testing.T) {
	alerts := &recordingAlerts{err: errors.New("webhook 500")}
	mail := &recordingMailer{err: errors.New("smtp down")}
	svc, err := NewDefaultNotificationService(alerts, mail, config.DefaultPersona(), "owner@x.com", time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.ContactReceived(ctx, models.Contact{ID: "c-1", Name: "Ada", Email: "ada@x.com", Message: "hello"})

	if len(alerts.alerts) != 1 || len(mail.emails) != 1 {
		t.Fatal("both channels should be attempted")
	}
	if alerts.ctxErr != nil {
		t.Fatalf("request cancellation leaked into delivery: %v", alerts.ctxErr)
	}
	if mail.emails[0].Subject != "New Contact: Ada" {
		t.Fatalf("subject = %q", mail.emails[0].Subject)
	}
}
