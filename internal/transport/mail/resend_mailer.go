package mail

import (
	"context"
	"errors"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends mail through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   strings.TrimSpace(from),
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if m == nil || m.client == nil {
		return errors.New("resend mailer not configured")
	}
	if m.from == "" {
		return errors.New("resend mailer missing from address")
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}
