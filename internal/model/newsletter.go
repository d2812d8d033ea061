package model

import (
	"strings"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
	"github.com/janmalik2800/Antigravity-web/internal/validation"
)

// NewsletterSubscription is the newsletter signup payload.
type NewsletterSubscription struct {
	Email string `json:"email"`
}

// Validate trims the address and requires a well-formed email.
func (n *NewsletterSubscription) Validate() error {
	n.Email = strings.TrimSpace(n.Email)
	if err := validation.Var(n.Email, "required,email"); err != nil {
		return errs.NewBadRequestError(errs.MsgInvalidEmail).WithCause(err)
	}
	return nil
}

// NewsletterResult is the success body of a subscription.
type NewsletterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MsgSubscribed confirms a successful import.
const MsgSubscribed = "Kontakt bol úspešne pridaný."
