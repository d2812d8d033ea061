package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
)

type signupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
	Terms bool   `json:"terms"`
}

func (r *signupRequest) Validate() error {
	var all []error
	if err := Struct(r); err != nil {
		all = append(all, err)
	}
	if !r.Terms {
		all = append(all, CustomValidationErrors{{Field: "terms", Message: "must be accepted"}})
	}
	return errors.Join(all...)
}

func (r *signupRequest) FieldMessage(field, tag string) (string, bool) {
	if field == "email" {
		return "bad email", true
	}
	return "", false
}

type passthroughRequest struct{}

func (passthroughRequest) Validate() error {
	return errs.NewBadRequestError("custom")
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string]string
	}{
		{
			name:       "valid",
			body:       `{"email":"a@b.sk","name":"Jo","terms":true}`,
			wantFields: nil,
		},
		{
			name: "field and custom errors",
			body: `{"email":"nope","name":"J"}`,
			wantFields: map[string]string{
				"email": "bad email",
				"name":  "must be at least 2 characters",
				"terms": "must be accepted",
			},
		},
		{
			name: "missing required",
			body: `{"terms":true}`,
			wantFields: map[string]string{
				"email": "bad email",
				"name":  "is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body), &signupRequest{})
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *errs.HTTPError, got %T", err)
			}
			if httpErr.Status != http.StatusBadRequest || httpErr.Code != errs.CodeValidation {
				t.Errorf("status/code = %d/%s", httpErr.Status, httpErr.Code)
			}
			got := map[string]string{}
			for _, fe := range httpErr.Errors {
				got[fe.Field] = fe.Error
			}
			if len(got) != len(tt.wantFields) {
				t.Fatalf("field errors = %v, want %v", got, tt.wantFields)
			}
			for field, msg := range tt.wantFields {
				if got[field] != msg {
					t.Errorf("%s: got %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(`{"email":`), &signupRequest{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", httpErr.Status)
	}
	if len(httpErr.Errors) != 0 {
		t.Errorf("unexpected field errors %v", httpErr.Errors)
	}
	if len(httpErr.FormErrors) != 1 || httpErr.FormErrors[0] != errs.MsgMalformedBody {
		t.Errorf("form errors = %v", httpErr.FormErrors)
	}
}

func TestBindAndValidatePassesHTTPErrorThrough(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &passthroughRequest{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Message != "custom" {
		t.Fatalf("got %v", err)
	}
}
