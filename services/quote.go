package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"text/template"

	"assessor_gateway/models"
	"assessor_gateway/storage"
)

var quoteTemplate = template.Must(template.New("quote").Parse(
	`New quote request

Name:    {{.Name}}
Email:   {{.Email}}
{{- if .Phone}}
Phone:   {{.Phone}}
{{- end}}
Address: {{.Address}}
{{- if .Message}}

{{.Message}}
{{- end}}
`))

type emailSender interface {
	Send(ctx context.Context, subject, text string) error
}

// QuoteService persists inbound quote requests and forwards them by email.
// The request is saved before the send so a mailer outage never loses it.
type QuoteService struct {
	store  *storage.Store
	mailer emailSender
}

func NewQuoteService(store *storage.Store, mailer emailSender) *QuoteService {
	return &QuoteService{store: store, mailer: mailer}
}

func (s *QuoteService) Submit(ctx context.Context, quote *models.QuoteRequest) error {
	id, err := s.store.SaveQuote(quote)
	if err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	quote.ID = id

	body, err := FormatQuoteEmail(quote)
	if err != nil {
		return err
	}

	subject := "Quote request: " + quote.Address
	if err := s.mailer.Send(ctx, subject, body); err != nil {
		return err
	}

	if err := s.store.MarkQuoteSent(quote.ID); err != nil {
		log.Printf("Warning: could not mark quote %d sent: %v", quote.ID, err)
	}
	return nil
}

func FormatQuoteEmail(quote *models.QuoteRequest) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, quote); err != nil {
		return "", fmt.Errorf("failed to format quote email: %w", err)
	}
	return buf.String(), nil
}
