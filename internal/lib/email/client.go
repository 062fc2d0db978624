// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and loads HTML
// templates from the filesystem to render email bodies.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/bookline/reservation/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Client wraps the Resend client and a logger.
//
// When no API key is configured, client stays nil and SendEmail runs
// in dry-run mode: it renders the template and logs instead of sending.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if c.from == "" {
		c.from = fmt.Sprintf("%s <onboarding@resend.dev>", config.ServiceName)
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// SendEmail sends an email with HTML rendered from a template file.
//
// Steps:
//   - Load the template file from templates/emails/<name>.html
//   - Execute it with data into a buffer
//   - Call the Resend API (or log, in dry-run mode)
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("%s/%s.html", "templates/emails", templateName)

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	if c.client == nil {
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", string(templateName)).
			Msg("email dry-run, no provider configured")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err = c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
