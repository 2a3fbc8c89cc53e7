package service

import (
	"context"
	"errors"
	"strings"

	"github.com/moizrehman/portfolio-api/internal/domain"
	"github.com/moizrehman/portfolio-api/internal/transport/mail"
)

var ErrMissingContactFields = errors.New("name, email, and message are required")

type ContactServiceConfig struct {
	OwnerEmail string
	OwnerName  string
}

// ContactService relays a verified contact submission as two emails: a
// notification to the site owner and a confirmation back to the sender.
// Delivery is at-most-once; a failed owner notification aborts the
// confirmation and the error surfaces to the caller.
type ContactService struct {
	mailer     mail.Mailer
	ownerEmail string
	ownerName  string
}

func NewContactService(mailer mail.Mailer, cfg ContactServiceConfig) *ContactService {
	return &ContactService{
		mailer:     mailer,
		ownerEmail: strings.TrimSpace(cfg.OwnerEmail),
		ownerName:  strings.TrimSpace(cfg.OwnerName),
	}
}

func (s *ContactService) Relay(ctx context.Context, sub domain.ContactSubmission) error {
	if strings.TrimSpace(sub.Name) == "" ||
		strings.TrimSpace(sub.Email) == "" ||
		strings.TrimSpace(sub.Message) == "" {
		return ErrMissingContactFields
	}
	if !ValidEmail(sub.Email) {
		return ErrInvalidEmail
	}

	if err := s.mailer.Send(ctx, mail.Message{
		To:      s.ownerEmail,
		ReplyTo: sub.Email,
		Subject: "New Contact: " + escapeHTML(sub.Name),
		HTML:    ownerNotificationHTML(sub),
	}); err != nil {
		return err
	}

	return s.mailer.Send(ctx, mail.Message{
		To:      sub.Email,
		Subject: "Thanks for reaching out!",
		HTML:    confirmationEmailHTML(sub.Name, sub.Message, s.ownerName),
	})
}
