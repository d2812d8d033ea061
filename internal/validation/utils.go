package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
)

// Validatable is implemented by request payloads that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// FieldMessager lets a payload supply its own message for a failed rule.
// field is the JSON name, tag the validator tag (required, min, email...).
type FieldMessager interface {
	FieldMessage(field, tag string) (string, bool)
}

// CustomValidationError is a rule that cannot be expressed with validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names so field errors match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Struct runs the shared validator against v's struct tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// Var validates a single value against a tag expression, e.g. Var(email, "required,email").
func Var(field any, tag string) error {
	return validate.Var(field, tag)
}

// BindAndValidate binds the request body into payload and validates it.
//
// Malformed bodies and rule violations both yield a 400 validation error.
// An *errs.HTTPError returned by Validate is passed through unchanged.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewMalformedBodyError().WithCause(err)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
		return errs.NewValidationError(errs.MsgValidation, extractValidationErrors(payload, err)).WithCause(err)
	}

	return nil
}

func extractValidationErrors(payload any, err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fieldErrors = append(fieldErrors, extractValidationErrors(payload, e)...)
		}
		return fieldErrors
	}

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, ce := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ce.Field, Error: ce.Message})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	messager, _ := payload.(FieldMessager)
	for _, fe := range validationErrors {
		field := fe.Field()
		msg := ""
		if messager != nil {
			msg, _ = messager.FieldMessage(field, fe.Tag())
		}
		if msg == "" {
			msg = defaultMessage(fe)
		}
		fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
	}

	return fieldErrors
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
