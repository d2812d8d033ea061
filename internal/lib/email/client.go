// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/janmalik2800/Antigravity-web/internal/config"
)

// sender is the part of the Resend SDK the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and hands messages to Resend.
type Client struct {
	sender        sender
	from          string
	to            []string
	subjectPrefix string
	templates     *template.Template
	logger        *zerolog.Logger
}

// NewClient creates a Client from the notification settings and the Resend API key.
// httpClient may be nil.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *zerolog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	rc := resend.NewCustomClient(httpClient, cfg.Integration.ResendAPIKey)
	return newClient(rc.Emails, cfg.Notification, logger)
}

func newClient(s sender, n config.NotificationConfig, logger *zerolog.Logger) (*Client, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}
	return &Client{
		sender:        s,
		from:          n.From,
		to:            n.To,
		subjectPrefix: n.SubjectPrefix,
		templates:     tmpl,
		logger:        logger,
	}, nil
}

// RenderTemplate executes templateName with data.
func (c *Client) RenderTemplate(templateName Template, data any) (string, error) {
	var body bytes.Buffer
	if err := c.templates.ExecuteTemplate(&body, string(templateName)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName and sends it to recipients.
// replyTo is optional.
func (c *Client) SendEmail(ctx context.Context, to []string, subject string, templateName Template, data any, replyTo string) (string, error) {
	html, err := c.RenderTemplate(templateName, data)
	if err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		Html:    html,
		ReplyTo: replyTo,
	}

	resp, err := c.sender.SendWithContext(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "failed to send email")
	}

	id := ""
	if resp != nil {
		id = resp.Id
	}
	c.logger.Debug().Str("email_id", id).Str("template", string(templateName)).Msg("email sent")
	return id, nil
}

// Subject builds "<prefix>: <detail>".
func (c *Client) Subject(detail string) string {
	return fmt.Sprintf("%s: %s", c.subjectPrefix, detail)
}
