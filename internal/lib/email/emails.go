package email

import (
	"context"
	"fmt"
	"time"

	"github.com/janmalik2800/Antigravity-web/internal/model"
)

// LeadNotifier announces a stored lead to the team.
type LeadNotifier interface {
	SendLeadNotification(ctx context.Context, lead *model.Lead) error
}

var _ LeadNotifier = (*Client)(nil)

// NotificationError is a failed lead notification. It is logged, never returned to a caller.
type NotificationError struct {
	LeadID string
	Err    error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("lead notification %s: %v", e.LeadID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// LeadEmailData is the data of the new_lead template. Empty optional fields are not rendered.
type LeadEmailData struct {
	LeadID      string
	Name        string
	Clinic      string
	Email       string
	Phone       string
	Practice    string
	Message     string
	Marketing   bool
	SubmittedAt string
}

var bratislava = loadLocation("Europe/Bratislava")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewLeadEmailData maps a stored lead onto template data.
func NewLeadEmailData(lead *model.Lead) LeadEmailData {
	submitted := lead.CreatedAt
	if submitted.IsZero() {
		submitted = time.Now()
	}
	return LeadEmailData{
		LeadID:      lead.ID.String(),
		Name:        lead.Name,
		Clinic:      lead.Clinic,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Practice:    lead.Practice,
		Message:     lead.Message,
		Marketing:   lead.Marketing,
		SubmittedAt: submitted.In(bratislava).Format("02.01.2006 15:04"),
	}
}

// SendLeadNotification emails the configured recipients about lead.
// Replies go straight to the prospect.
func (c *Client) SendLeadNotification(ctx context.Context, lead *model.Lead) error {
	_, err := c.SendEmail(ctx,
		c.to,
		c.Subject(lead.Clinic),
		TemplateNewLead,
		NewLeadEmailData(lead),
		lead.Email,
	)
	if err != nil {
		return &NotificationError{LeadID: lead.ID.String(), Err: err}
	}
	return nil
}
