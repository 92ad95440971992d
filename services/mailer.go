package services

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"assessor_gateway/config"
)

// Mailer sends through a transactional-email HTTP API. It is constructed
// once at startup and injected into whatever needs to send; nothing in this
// package holds a package-level client.
type Mailer struct {
	client *resty.Client
	from   string
	to     string
}

func NewMailer(cfg *config.MailConfig, client *resty.Client) *Mailer {
	return &Mailer{
		client: client,
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (m *Mailer) Send(ctx context.Context, subject, text string) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"from":    m.from,
			"to":      m.to,
			"subject": subject,
			"text":    text,
		}).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
