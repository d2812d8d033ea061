// Package mailinglist imports newsletter subscribers into SmartEmailing.
package mailinglist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Importer adds one address to the newsletter list.
type Importer interface {
	Subscribe(ctx context.Context, email string) error
}

// UpstreamError is a non-2xx answer from SmartEmailing. Body is for logs only.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("smartemailing import returned %d", e.StatusCode)
}

// Client talks to the SmartEmailing v3 API with HTTP Basic auth.
type Client struct {
	baseURL    string
	username   string
	apiKey     string
	listID     int
	httpClient *http.Client
}

var _ Importer = (*Client)(nil)

// NewClient creates a Client. baseURL is usually https://app.smartemailing.cz/api/v3.
func NewClient(baseURL, username, apiKey string, listID int, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		apiKey:     apiKey,
		listID:     listID,
		httpClient: httpClient,
	}
}

type importSettings struct {
	Update                   bool `json:"update"`
	AddNamedays              bool `json:"add_namedays"`
	AddGenders               bool `json:"add_genders"`
	AddSalutations           bool `json:"add_salutations"`
	PreserveUnsubscribed     bool `json:"preserve_unsubscribed"`
	SkipInvalidEmails        bool `json:"skip_invalid_emails"`
	CreateUpdateCustomFields bool `json:"create_update_custom_fields"`
}

type contactList struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type contact struct {
	EmailAddress string        `json:"emailaddress"`
	ContactLists []contactList `json:"contactlists"`
}

type importRequest struct {
	Settings importSettings `json:"settings"`
	Data     []contact      `json:"data"`
}

// defaultSettings upserts the contact while leaving unsubscribed addresses alone.
var defaultSettings = importSettings{
	Update:                   true,
	AddNamedays:              true,
	AddGenders:               true,
	AddSalutations:           true,
	PreserveUnsubscribed:     true,
	SkipInvalidEmails:        true,
	CreateUpdateCustomFields: false,
}

// Subscribe imports email into the list as a confirmed contact.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	payload, err := json.Marshal(importRequest{
		Settings: defaultSettings,
		Data: []contact{{
			EmailAddress: strings.TrimSpace(email),
			ContactLists: []contactList{{ID: c.listID, Status: "confirmed"}},
		}},
	})
	if err != nil {
		return fmt.Errorf("encoding import request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.username, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling smartemailing import: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Ping checks credentials against the /check-credentials endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/check-credentials", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.username, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{StatusCode: resp.StatusCode}
	}
	return nil
}
