package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/janmalik2800/Antigravity-web/internal/config"
	"github.com/janmalik2800/Antigravity-web/internal/errs"
	"github.com/janmalik2800/Antigravity-web/internal/server"
)

func testServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"https://mediconect.sk"}},
		},
		Logger: &log,
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "application error",
			method:     http.MethodPost,
			err:        errs.NewConfigurationError([]string{"MEDICONECT_LEAD_STORE__KEY"}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Chýba konfigurácia servera: MEDICONECT_LEAD_STORE__KEY"}`,
		},
		{
			name:       "wrapped application error",
			method:     http.MethodPost,
			err:        errors.Join(errors.New("ctx"), errs.NewBadRequestError(errs.MsgInvalidEmail)),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Neplatná e-mailová adresa"}`,
		},
		{
			name:       "unmatched route",
			method:     http.MethodGet,
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Route not found"}`,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method Not Allowed"}`,
		},
		{
			name:       "unexpected error",
			method:     http.MethodPost,
			err:        errors.New("pq: password authentication failed for user postgres"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Interná chyba servera"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/api/contact", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewGlobalMiddlewares(testServer()).GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestGlobalErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := c.String(http.StatusOK, "done"); err != nil {
		t.Fatal(err)
	}
	NewGlobalMiddlewares(testServer()).GlobalErrorHandler(errors.New("late"), c)

	if rec.Body.String() != "done" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestGlobalErrorHandlerHead(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/status", nil), rec)

	NewGlobalMiddlewares(testServer()).GlobalErrorHandler(errors.New("boom"), c)

	if rec.Code != http.StatusInternalServerError || rec.Body.Len() != 0 {
		t.Errorf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "generated", incoming: "", reuse: false},
		{name: "forwarded", incoming: "abc-123", reuse: true},
		{name: "oversized", incoming: strings.Repeat("x", 200), reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})(c)
			if err != nil {
				t.Fatal(err)
			}

			if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
				t.Fatalf("request id %q, header %q", seen, rec.Header().Get(RequestIDHeader))
			}
			if (seen == tt.incoming) != tt.reuse {
				t.Errorf("reuse = %v, want %v", seen == tt.incoming, tt.reuse)
			}
		})
	}
}

func TestEnhanceContextStoresRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	s := testServer()
	log := zerolog.New(&buf)
	s.Logger = &log

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/contact", nil), httptest.NewRecorder())
	c.Set(RequestIDKey, "req-1")

	err := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo context")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		return nil
	})(c)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"request_id":"req-1"`) {
			t.Errorf("line without request id: %s", line)
		}
	}
}
