package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/janmalik2800/Antigravity-web/internal/model"
	"github.com/janmalik2800/Antigravity-web/internal/sqlerr"
)

// RestLeadRepository inserts leads through a Supabase PostgREST endpoint.
type RestLeadRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// NewRestLeadRepository creates a RestLeadRepository. projectURL is the Supabase project
// URL (https://<ref>.supabase.co); apiKey is sent both as apikey and as bearer token.
func NewRestLeadRepository(projectURL, apiKey string, httpClient *http.Client) *RestLeadRepository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RestLeadRepository{
		baseURL:    strings.TrimRight(projectURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

var _ LeadStore = (*RestLeadRepository)(nil)

type leadRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Clinic    string  `json:"clinic"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Practice  *string `json:"practice"`
	Message   *string `json:"message"`
	Marketing bool    `json:"marketing"`
	GDPR      *bool   `json:"gdpr,omitempty"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Insert posts one row. Non-2xx responses come back as *sqlerr.Error.
func (r *RestLeadRepository) Insert(ctx context.Context, lead *model.Lead) error {
	payload, err := json.Marshal([]leadRow{{
		ID:        lead.ID.String(),
		Name:      lead.Name,
		Clinic:    lead.Clinic,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Practice:  nullable(lead.Practice),
		Message:   nullable(lead.Message),
		Marketing: lead.Marketing,
		GDPR:      lead.GDPR,
	}})
	if err != nil {
		return fmt.Errorf("encoding lead row: %w", err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", r.baseURL, LeadsTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating lead store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting lead row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return sqlerr.FromPostgREST(LeadsTable, resp.StatusCode, body)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	lead.CreatedAt = r.now()
	return nil
}
