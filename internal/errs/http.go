package errs

import (
	"fmt"
	"net/http"
	"strings"
)

// User-facing messages. The site is Slovak; the forms show these strings verbatim.
const (
	MsgConfiguration      = "Chýba konfigurácia servera"
	MsgValidation         = "Neplatné údaje"
	MsgPersistence        = "Chyba pri ukladaní do databázy"
	MsgUpstream           = "Chyba pri ukladaní e-mailu do systému. Skúste to prosím neskôr."
	MsgInternal           = "Interná chyba servera"
	MsgInternalNewsletter = "Interná chyba servera pri spracovaní požiadavky."
	MsgInvalidEmail       = "Neplatná e-mailová adresa"
	MsgMalformedBody      = "Neplatný formát požiadavky"
)

// NewConfigurationError reports required settings that are absent. The names of the
// missing environment variables are part of the message.
func NewConfigurationError(missing []string) *HTTPError {
	msg := MsgConfiguration
	if len(missing) > 0 {
		msg = fmt.Sprintf("%s: %s", MsgConfiguration, strings.Join(missing, ", "))
	}
	return &HTTPError{
		Code:    CodeConfiguration,
		Message: msg,
		Status:  http.StatusInternalServerError,
	}
}

// NewValidationError creates a 400 carrying field-level detail.
func NewValidationError(message string, fieldErrors []FieldError) *HTTPError {
	if message == "" {
		message = MsgValidation
	}
	return &HTTPError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  fieldErrors,
	}
}

// NewMalformedBodyError is the validation error for a body that could not be
// decoded. It has no field errors, so the reason goes to details.formErrors.
func NewMalformedBodyError() *HTTPError {
	e := NewValidationError(MsgValidation, nil)
	e.FormErrors = []string{MsgMalformedBody}
	return e
}

// NewBadRequestError creates a plain 400 without details.
func NewBadRequestError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewPersistenceError reports a failed lead store write. subCode is only logged.
func NewPersistenceError(subCode string) *HTTPError {
	return &HTTPError{
		Code:    CodePersistence,
		SubCode: subCode,
		Message: MsgPersistence,
		Status:  http.StatusInternalServerError,
	}
}

// NewUpstreamError mirrors the status of a failed third-party call.
// Non-error statuses become 502.
func NewUpstreamError(upstreamStatus int) *HTTPError {
	status := upstreamStatus
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &HTTPError{
		Code:    CodeUpstream,
		Message: MsgUpstream,
		Status:  status,
	}
}

// NewNotFoundError creates a 404.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeNotFound,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a generic 500. Internals never reach the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    CodeInternal,
		Message: MsgInternal,
		Status:  http.StatusInternalServerError,
	}
}
