package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/moizrehman/portfolio-api/internal/domain"
	"github.com/moizrehman/portfolio-api/internal/repository/ports"
	"github.com/moizrehman/portfolio-api/internal/transport/mail"
	"github.com/moizrehman/portfolio-api/internal/util"
)

var (
	ErrInvalidEmail  = errors.New("valid email is required")
	ErrMissingFields = errors.New("name and message are required")
	ErrMissingCode   = errors.New("otp code is required")
	ErrOTPCooldown   = errors.New("too many otp requests for this email")
	ErrOTPNotFound   = errors.New("no pending otp for this email")
	ErrOTPExpired    = errors.New("otp expired")
	ErrOTPMismatch   = errors.New("otp code does not match")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address passes the contact form's shape
// check: local part, "@", domain, ".", suffix, with no whitespace anywhere.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

const (
	defaultOTPTTL      = 10 * time.Minute
	defaultOTPCooldown = 60 * time.Second
)

type OTPServiceConfig struct {
	OwnerName string
	TTL       time.Duration
	Cooldown  time.Duration
}

type OTPSendInput struct {
	Email    string
	Name     string
	Message  string
	FileName *string
}

// OTPService issues one-time passcodes that prove a contact-form sender
// controls their email address, and verifies them. Codes are single-use and
// expire lazily: an expired record is removed by whichever access notices it.
type OTPService struct {
	store  ports.OTPRepository
	mailer mail.Mailer

	ownerName string
	ttl       time.Duration
	cooldown  time.Duration
	now       func() time.Time
	generate  func() (string, error)
}

func NewOTPService(store ports.OTPRepository, mailer mail.Mailer, cfg OTPServiceConfig) *OTPService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = defaultOTPCooldown
	}

	return &OTPService{
		store:     store,
		mailer:    mailer,
		ownerName: strings.TrimSpace(cfg.OwnerName),
		ttl:       ttl,
		cooldown:  cooldown,
		now:       time.Now,
		generate:  util.GenerateOTPCode,
	}
}

// Send validates the submission, replaces any pending record for the address
// and emails a fresh code. The code never leaves through any channel other
// than the email itself.
func (s *OTPService) Send(ctx context.Context, in OTPSendInput) error {
	if !ValidEmail(in.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Message) == "" {
		return ErrMissingFields
	}

	now := s.now()
	existing, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("look up pending otp: %w", err)
	}
	if existing != nil {
		if existing.Expired(now) {
			if err := s.store.DeleteByEmail(ctx, in.Email); err != nil {
				return fmt.Errorf("drop expired otp: %w", err)
			}
		} else if now.Sub(existing.CreatedAt) < s.cooldown {
			return ErrOTPCooldown
		}
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate otp code: %w", err)
	}

	record := &domain.OTPRecord{
		Email:     in.Email,
		Code:      code,
		Name:      in.Name,
		Message:   in.Message,
		FileName:  in.FileName,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	// The record is not rolled back when dispatch fails: if the email did
	// arrive after a late gateway error, the code must still verify.
	return s.mailer.Send(ctx, mail.Message{
		To:      in.Email,
		Subject: "Verify your email - Contact Form",
		HTML:    verificationEmailHTML(in.Name, code, int(s.ttl.Minutes()), s.ownerName),
	})
}

// Verify consumes a pending code. On success the record is deleted before the
// original submission is returned, so a code can never verify twice. A
// mismatched, unexpired code mutates nothing and may be retried.
func (s *OTPService) Verify(ctx context.Context, email, code string) (*domain.ContactSubmission, error) {
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCode
	}

	record, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up pending otp: %w", err)
	}
	if record == nil {
		return nil, ErrOTPNotFound
	}

	if record.Expired(s.now()) {
		if err := s.store.DeleteByEmail(ctx, email); err != nil {
			return nil, fmt.Errorf("drop expired otp: %w", err)
		}
		return nil, ErrOTPExpired
	}

	if record.Code != code {
		return nil, ErrOTPMismatch
	}

	if err := s.store.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	return &domain.ContactSubmission{
		Name:     record.Name,
		Email:    record.Email,
		Message:  record.Message,
		FileName: record.FileName,
	}, nil
}
