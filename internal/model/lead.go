// Package model holds the request payloads and stored records of the site backend.
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/janmalik2800/Antigravity-web/internal/validation"
)

// LeadSubmission is the contact form payload.
type LeadSubmission struct {
	Name      string `json:"name" validate:"required,min=2"`
	Clinic    string `json:"clinic" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=9"`
	Practice  string `json:"practice"`
	Message   string `json:"message"`
	Marketing bool   `json:"marketing"`

	// GDPR is the explicit consent checkbox of earlier form revisions.
	GDPR *bool `json:"gdpr,omitempty"`

	// ConsentRequired makes GDPR mandatory. Set by the handler from config, never bound.
	ConsentRequired bool `json:"-"`
}

var leadMessages = map[string]string{
	"name":   "Meno je príliš krátke",
	"clinic": "Názov kliniky je príliš krátky",
	"email":  "Neplatný e-mail",
	"phone":  "Telefónne číslo je príliš krátke",
}

// MsgConsentRequired is reported on the gdpr field when consent is missing.
const MsgConsentRequired = "Musíte súhlasiť so spracovaním údajov"

// Validate checks the field rules and, when required, the consent flag.
func (s *LeadSubmission) Validate() error {
	var errs []error
	if err := validation.Struct(s); err != nil {
		errs = append(errs, err)
	}
	if s.ConsentRequired && (s.GDPR == nil || !*s.GDPR) {
		errs = append(errs, validation.CustomValidationErrors{
			{Field: "gdpr", Message: MsgConsentRequired},
		})
	}
	return errors.Join(errs...)
}

// FieldMessage returns the form's message for a failed field. Every rule on a
// field shares one message, matching what the form shows next to the input.
func (s *LeadSubmission) FieldMessage(field, _ string) (string, bool) {
	msg, ok := leadMessages[field]
	return msg, ok
}

// Lead is one row of the leads table. Rows are only ever appended.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Clinic    string    `json:"clinic"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Practice  string    `json:"practice,omitempty"`
	Message   string    `json:"message,omitempty"`
	Marketing bool      `json:"marketing"`
	CreatedAt time.Time `json:"created_at"`

	// GDPR records the consent the form enforced. Nil when consent is not required.
	GDPR *bool `json:"gdpr,omitempty"`
}

// NewLead maps a validated submission onto a new row with a fresh id.
func NewLead(s *LeadSubmission) *Lead {
	lead := &Lead{
		ID:        uuid.New(),
		Name:      s.Name,
		Clinic:    s.Clinic,
		Email:     s.Email,
		Phone:     s.Phone,
		Practice:  s.Practice,
		Message:   s.Message,
		Marketing: s.Marketing,
	}
	if s.ConsentRequired && s.GDPR != nil {
		consent := *s.GDPR
		lead.GDPR = &consent
	}
	return lead
}
