package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"washdesk/models"
)

func TestRenderPreamble(t *testing.T) {
	p := DefaultPersona()
	got, err := RenderPreamble(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		models.BookingDataBegin,
		models.BookingDataEnd,
		p.BusinessName,
		p.Phone,
		"[residential-driveway]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("preamble missing %q", want)
		}
	}
	for _, field := range models.RequiredBookingFields {
		if !strings.Contains(got, "- "+field+"\n") {
			t.Errorf("preamble does not list required field %q", field)
		}
	}
}

func TestFindService(t *testing.T) {
	p := DefaultPersona()
	for _, in := range []string{"roof-cleaning", "ROOF CLEANING", "  Roof Cleaning "} {
		s, ok := p.FindService(in)
		if !ok || s.ID != "roof-cleaning" {
			t.Errorf("FindService(%q) = %+v, %v", in, s, ok)
		}
	}
	if _, ok := p.FindService("chimney sweep"); ok {
		t.Error("unknown service matched")
	}
	if got := p.ServiceName("deck-patio"); got != "Deck & Patio Cleaning" {
		t.Errorf("ServiceName = %q", got)
	}
	if got := p.ServiceName("gutter cleaning"); got != "gutter cleaning" {
		t.Errorf("ServiceName of free text = %q", got)
	}
}

func TestLoadPersonaDefaults(t *testing.T) {
	p, err := LoadPersona("")
	if err != nil {
		t.Fatal(err)
	}
	if p.BusinessName != DefaultPersona().BusinessName || !strings.Contains(p.Preamble, models.BookingDataBegin) {
		t.Fatalf("unexpected persona: %+v", p)
	}
}

func TestLoadPersonaFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	content := `business_name: Harbor Wash Co
phone: "(555) 222-3333"
services:
  - id: boat-wash
    name: Boat Wash
    price: from $90
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPersona(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BusinessName != "Harbor Wash Co" || p.Phone != "(555) 222-3333" {
		t.Fatalf("file values not applied: %+v", p)
	}
	if p.Hours != DefaultPersona().Hours {
		t.Fatalf("unset fields should keep defaults, hours = %q", p.Hours)
	}
	if len(p.Services) != 1 || p.Services[0].ID != "boat-wash" {
		t.Fatalf("services = %+v", p.Services)
	}
	if !strings.Contains(p.Preamble, "Harbor Wash Co") || !strings.Contains(p.Preamble, "[boat-wash]") {
		t.Fatalf("preamble not rendered from file values:\n%s", p.Preamble)
	}
}

func TestLoadPersonaExplicitPreamble(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.json")
	if err := os.WriteFile(path, []byte(`{"preamble":"Custom system prompt"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPersona(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Preamble != "Custom system prompt" {
		t.Fatalf("preamble = %q", p.Preamble)
	}
}

func TestLoadPersonaMissingFile(t *testing.T) {
	if _, err := LoadPersona(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
