package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type signup struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Handle  string `json:"handle" binding:"required,max=8"`
	Comment string `json:"comment"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		in     signup
		reason string
		fields string
	}{
		{name: "valid", in: signup{Name: "Jane", Email: "jane@x.com", Handle: "jd"}},
		{name: "missing", in: signup{Email: "jane@x.com"}, reason: "missing required fields", fields: "name,handle"},
		{name: "display name email", in: signup{Name: "Jane", Email: "Jane <jane@x.com>", Handle: "jd"}, reason: "invalid fields", fields: "email"},
		{name: "email list", in: signup{Name: "Jane", Email: "jane@x.com, bob@y.com", Handle: "jd"}, reason: "invalid fields", fields: "email"},
		{name: "too long", in: signup{Name: "Jane", Email: "jane@x.com", Handle: "jane-doe-wash"}, reason: "fields too long", fields: "handle"},
		{name: "missing beats invalid", in: signup{Email: "nope", Handle: "jd"}, reason: "missing required fields", fields: "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Reason != tt.reason || strings.Join(vErr.Fields, ",") != tt.fields {
				t.Fatalf("got %q %v, want %q %s", vErr.Reason, vErr.Fields, tt.reason, tt.fields)
			}
		})
	}
}

func TestAsValidationErrorPassesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	if AsValidationError(boom) != boom {
		t.Fatal("non-validator errors must pass through")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []string{"name", "email"}, Reason: "missing required fields"}
	if err.Error() != "missing required fields: name, email" {
		t.Fatalf("message = %q", err.Error())
	}
	if (&ValidationError{Reason: "bad"}).Error() != "bad" {
		t.Fatal("message without fields")
	}
}

func TestAdminToken(t *testing.T) {
	token, err := GenerateAdminToken("s3cret", "owner", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := ExtractAdminSubject("s3cret", token)
	if err != nil || sub != "owner" {
		t.Fatalf("sub = %q, err = %v", sub, err)
	}
	if _, err := ExtractAdminSubject("other", token); err == nil {
		t.Fatal("token accepted with the wrong secret")
	}
	if _, err := GenerateAdminToken("", "owner", time.Hour); err == nil {
		t.Fatal("empty secret must be rejected")
	}
}

func TestFallbackMessage(t *testing.T) {
	msg := FallbackMessage("(555) 010-4477")
	if !strings.Contains(msg, "(555) 010-4477") {
		t.Fatalf("phone missing from %q", msg)
	}
}
