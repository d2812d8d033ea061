package errs

import (
	"encoding/json"
	"strings"
)

// Error kinds. HTTPError.Code carries one of these (or a finer sub-code derived from them).
const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodePersistence   = "PERSISTENCE_ERROR"
	CodeUpstream      = "UPSTREAM_SERVICE_ERROR"
	CodeInternal      = "INTERNAL_SERVER_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeBadRequest    = "BAD_REQUEST"
)

// Sentinels for errors.Is. Matching compares Code only.
var (
	ErrConfiguration = &HTTPError{Code: CodeConfiguration}
	ErrValidation    = &HTTPError{Code: CodeValidation}
	ErrPersistence   = &HTTPError{Code: CodePersistence}
	ErrUpstream      = &HTTPError{Code: CodeUpstream}
	ErrInternal      = &HTTPError{Code: CodeInternal}
)

// FieldError represents a field-level validation error.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type for API responses.
//
// Only Message (and Errors or FormErrors, when present) reach the client. Code and the wrapped
// cause are for logs and errors.Is / errors.As.
type HTTPError struct {
	Code    string
	Message string
	Status  int
	Errors  []FieldError

	// FormErrors are validation failures not tied to a field.
	FormErrors []string

	// SubCode refines Code for logs, e.g. LEAD_ALREADY_EXISTS.
	SubCode string

	cause error
}

// Details is the `details` member of a validation error body.
type Details struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

type body struct {
	Error   string   `json:"error"`
	Details *Details `json:"details,omitempty"`
}

// MarshalJSON renders the client-facing envelope.
func (e *HTTPError) MarshalJSON() ([]byte, error) {
	b := body{Error: e.Message}
	if len(e.Errors) > 0 || len(e.FormErrors) > 0 {
		b.Details = e.Details()
	}
	return json.Marshal(b)
}

// Details groups field errors by field, keeping their order.
func (e *HTTPError) Details() *Details {
	d := &Details{
		FormErrors:  append([]string{}, e.FormErrors...),
		FieldErrors: make(map[string][]string, len(e.Errors)),
	}
	for _, fe := range e.Errors {
		d.FieldErrors[fe.Field] = append(d.FieldErrors[fe.Field], fe.Error)
	}
	return d
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *HTTPError of the same kind.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause returns a copy of e wrapping cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	cp := *e
	cp.cause = cause
	return &cp
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
