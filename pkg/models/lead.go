package models

import "encoding/json"

// Origin identifies which landing page section produced a lead.
type Origin string

const (
	OriginHeroCTA    Origin = "hero-cta"
	OriginDiagnostic Origin = "diagnostic"
	OriginEbook      Origin = "ebook"
	OriginCTAFinal   Origin = "cta-final"
)

// Valid reports whether o is one of the known page sections.
func (o Origin) Valid() bool {
	switch o {
	case OriginHeroCTA, OriginDiagnostic, OriginEbook, OriginCTAFinal:
		return true
	default:
		return false
	}
}

// Interest is the service a lead is segmented under.
type Interest string

const (
	InterestJudicialRecovery Interest = "judicial-recovery"
	InterestConsulting       Interest = "consulting"
	InterestEbook            Interest = "ebook"
)

// LeadFormInput represents the data typed into one of the landing page forms
type LeadFormInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// LeadSubmission is a form post together with the section it came from.
type LeadSubmission struct {
	LeadFormInput
	Origin   Origin `json:"origin"`
	ClientID string `json:"client_id,omitempty"`
}

// ContactAttributes are the custom fields stored on the upstream contact.
type ContactAttributes struct {
	Name       string   `json:"NAME" validate:"notblank"`
	Company    string   `json:"COMPANY"`
	Phone      string   `json:"PHONE"`
	Origin     Origin   `json:"ORIGIN,omitempty"`
	Interest   Interest `json:"INTEREST"`
	SignupDate string   `json:"SIGNUP_DATE"`
}

// NormalizedContact is the payload the relay forwards upstream.
type NormalizedContact struct {
	Email         string            `json:"email" validate:"notblank"`
	Attributes    ContactAttributes `json:"attributes"`
	ListIDs       []int64           `json:"listIds"`
	UpdateEnabled bool              `json:"updateEnabled"`
}

// SubmissionResult is what the submitter hands back to the form handler.
type SubmissionResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RelayResponse is the body returned by the relay endpoint on success.
type RelayResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Updated bool   `json:"updated,omitempty"`
}
