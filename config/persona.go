package config

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"washdesk/models"

	"github.com/spf13/viper"
)

// ServiceOffering is one entry of the business's service catalog.
type ServiceOffering struct {
	ID          string `mapstructure:"id" json:"id"`
	Name        string `mapstructure:"name" json:"name"`
	Price       string `mapstructure:"price" json:"price"`
	Description string `mapstructure:"description" json:"description"`
}

// Persona is the business profile the assistant speaks for. Preamble is the
// system message sent to the model; when the persona file leaves it empty it
// is rendered from the other fields.
type Persona struct {
	BusinessName string            `mapstructure:"business_name"`
	Phone        string            `mapstructure:"phone"`
	Email        string            `mapstructure:"email"`
	ServiceArea  string            `mapstructure:"service_area"`
	Hours        string            `mapstructure:"hours"`
	Facts        []string          `mapstructure:"facts"`
	Services     []ServiceOffering `mapstructure:"services"`
	Preamble     string            `mapstructure:"preamble"`
}

// FindService matches a catalog entry by id or display name, ignoring case.
func (p Persona) FindService(value string) (ServiceOffering, bool) {
	v := strings.TrimSpace(value)
	for _, s := range p.Services {
		if strings.EqualFold(s.ID, v) || strings.EqualFold(s.Name, v) {
			return s, true
		}
	}
	return ServiceOffering{}, false
}

// ServiceName returns the display name for a catalog id, or the id itself.
func (p Persona) ServiceName(id string) string {
	if s, ok := p.FindService(id); ok {
		return s.Name
	}
	return id
}

// DefaultPersona is used when no persona file is configured.
func DefaultPersona() Persona {
	p := Persona{
		BusinessName: "Tideline Exterior Cleaning",
		Phone:        "(555) 010-4477",
		Email:        "hello@tidelinewash.example",
		ServiceArea:  "the coastal county and surrounding towns, up to 30 miles from downtown",
		Hours:        "Monday to Saturday, 7am to 6pm",
		Facts: []string{
			"Fully licensed and insured, family owned since 2012.",
			"We use soft washing for roofs and siding and surface cleaners for flat concrete.",
			"Free estimates; final price is confirmed on site before any work starts.",
			"Appointments are booked as morning (8am-12pm) or afternoon (12pm-5pm) windows.",
		},
		Services: []ServiceOffering{
			{ID: "residential-driveway", Name: "Driveway Cleaning", Price: "from $150", Description: "Surface-cleaned concrete or pavers, oil spot pre-treatment included."},
			{ID: "house-wash", Name: "House Soft Wash", Price: "from $300", Description: "Low-pressure wash of siding, soffits and gutters' exterior."},
			{ID: "roof-cleaning", Name: "Roof Cleaning", Price: "from $450", Description: "Soft wash treatment removing algae streaks and moss."},
			{ID: "deck-patio", Name: "Deck & Patio Cleaning", Price: "from $175", Description: "Wood, composite or stone decks and patios."},
			{ID: "commercial", Name: "Commercial Cleaning", Price: "quote on request", Description: "Storefronts, parking areas, dumpster pads."},
		},
	}
	return p
}

// LoadPersona reads the persona from path (yaml/json/toml, by extension),
// falling back to DefaultPersona for any field the file leaves empty.
func LoadPersona(path string) (Persona, error) {
	p := DefaultPersona()
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Persona{}, fmt.Errorf("read persona file %s: %w", path, err)
		}
		var fromFile Persona
		if err := v.Unmarshal(&fromFile); err != nil {
			return Persona{}, fmt.Errorf("decode persona file %s: %w", path, err)
		}
		p = mergePersona(p, fromFile)
	}

	if strings.TrimSpace(p.Preamble) == "" {
		preamble, err := RenderPreamble(p)
		if err != nil {
			return Persona{}, err
		}
		p.Preamble = preamble
	}
	return p, nil
}

func mergePersona(base, override Persona) Persona {
	if override.BusinessName != "" {
		base.BusinessName = override.BusinessName
	}
	if override.Phone != "" {
		base.Phone = override.Phone
	}
	if override.Email != "" {
		base.Email = override.Email
	}
	if override.ServiceArea != "" {
		base.ServiceArea = override.ServiceArea
	}
	if override.Hours != "" {
		base.Hours = override.Hours
	}
	if len(override.Facts) > 0 {
		base.Facts = override.Facts
	}
	if len(override.Services) > 0 {
		base.Services = override.Services
	}
	base.Preamble = override.Preamble
	return base
}

var preambleTemplate = template.Must(template.New("preamble").Parse(`You are the friendly booking assistant for {{.BusinessName}}.
You answer questions about our services and help customers book an appointment.

Business facts:
- Phone: {{.Phone}}
- Email: {{.Email}}
- Service area: {{.ServiceArea}}
- Hours: {{.Hours}}
{{- range .Facts}}
- {{.}}
{{- end}}

Services we offer (use the id in brackets when booking):
{{- range .Services}}
- [{{.ID}}] {{.Name}}: {{.Price}}. {{.Description}}
{{- end}}

To book, you must collect ALL of the following from the customer:
{{- range .Fields}}
- {{.}}
{{- end}}
Ask for missing details naturally, a couple at a time. Never invent values.
Confirm the details back to the customer before finalizing.

Once you have every field and the customer has confirmed, include exactly one
line in your reply in this format, with the JSON on a single line:
{{.Begin}} {"name":"...","email":"...","phone":"...","service":"...","date":"YYYY-MM-DD","time":"morning|afternoon","address":"..."} {{.End}}
Only emit that line once per booking. Never show it before the customer confirms.
Keep replies short and warm. If you cannot help, suggest calling {{.Phone}}.`))

// RenderPreamble builds the system message from the persona fields and the
// booking-data marker protocol.
func RenderPreamble(p Persona) (string, error) {
	data := struct {
		Persona
		Fields []string
		Begin  string
		End    string
	}{
		Persona: p,
		Fields:  models.RequiredBookingFields,
		Begin:   models.BookingDataBegin,
		End:     models.BookingDataEnd,
	}
	var buf bytes.Buffer
	if err := preambleTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render persona preamble: %w", err)
	}
	return buf.String(), nil
}
