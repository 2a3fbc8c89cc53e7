package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/moizrehman/portfolio-api/internal/domain"
	"github.com/moizrehman/portfolio-api/internal/transport/mail"
)

type fakeOTPRepo struct {
	records map[string]domain.OTPRecord

	upsertErr error
	findErr   error
	deleteErr error
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{records: make(map[string]domain.OTPRecord)}
}

func (f *fakeOTPRepo) Upsert(ctx context.Context, record *domain.OTPRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[record.Email] = *record
	return nil
}

func (f *fakeOTPRepo) FindByEmail(ctx context.Context, email string) (*domain.OTPRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	record, ok := f.records[email]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeOTPRepo) DeleteByEmail(ctx context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.records, email)
	return nil
}

type fakeMailer struct {
	sent     []mail.Message
	attempts int
	err      error
	failOn   int // 1-based attempt that fails; 0 fails every attempt when err is set
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	f.attempts++
	if f.err != nil && (f.failOn == 0 || f.failOn == f.attempts) {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newOTPServiceForTests(repo *fakeOTPRepo, mailer *fakeMailer) *OTPService {
	svc := NewOTPService(repo, mailer, OTPServiceConfig{OwnerName: "Moiz Rehman"})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	return svc
}

func TestOTPService_SendAndVerify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)

	err := svc.Send(ctx, OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "Hi there"})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	record, ok := repo.records["a@b.com"]
	if !ok {
		t.Fatal("expected a stored record after Send")
	}
	if len(record.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", record.Code)
	}
	if got, want := record.ExpiresAt, record.CreatedAt.Add(10*time.Minute); !got.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, got)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected exactly one email, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "a@b.com" {
		t.Fatalf("expected email to a@b.com, got %q", msg.To)
	}
	if msg.Subject != "Verify your email - Contact Form" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, record.Code) {
		t.Fatal("expected email body to contain the code")
	}
	if !strings.Contains(msg.HTML, "expires in 10 minutes") {
		t.Fatal("expected email body to mention the expiry window")
	}

	sub, err := svc.Verify(ctx, "a@b.com", record.Code)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if sub.Name != "Ana" || sub.Email != "a@b.com" || sub.Message != "Hi there" {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if sub.FileName != nil {
		t.Fatalf("expected nil fileName, got %q", *sub.FileName)
	}
	if len(repo.records) != 0 {
		t.Fatal("expected record to be consumed on successful verify")
	}

	// The code is single-use.
	if _, err := svc.Verify(ctx, "a@b.com", record.Code); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound on reuse, got %v", err)
	}
}

func TestOTPService_SendCooldown(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)

	in := OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "Hi"}
	if err := svc.Send(ctx, in); err != nil {
		t.Fatalf("first Send returned error: %v", err)
	}
	firstCode := repo.records["a@b.com"].Code

	base := svc.now()
	svc.now = func() time.Time { return base.Add(30 * time.Second) }
	if err := svc.Send(ctx, in); !errors.Is(err, ErrOTPCooldown) {
		t.Fatalf("expected ErrOTPCooldown within 60s, got %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected no email during cooldown, got %d sends", len(mailer.sent))
	}
	if repo.records["a@b.com"].Code != firstCode {
		t.Fatal("cooldown must not replace the pending code")
	}

	// Past the cooldown a new send replaces the record.
	svc.now = func() time.Time { return base.Add(61 * time.Second) }
	if err := svc.Send(ctx, in); err != nil {
		t.Fatalf("Send after cooldown returned error: %v", err)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected a second email, got %d sends", len(mailer.sent))
	}
	second := repo.records["a@b.com"]
	if !second.CreatedAt.Equal(base.Add(61 * time.Second)) {
		t.Fatalf("expected replacement record timestamp, got %v", second.CreatedAt)
	}
}

func TestOTPService_SendReplacesExpiredRecord(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)

	in := OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "Hi"}
	if err := svc.Send(ctx, in); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	firstCode := repo.records["a@b.com"].Code

	base := svc.now()
	svc.now = func() time.Time { return base.Add(11 * time.Minute) }
	if err := svc.Send(ctx, in); err != nil {
		t.Fatalf("Send after expiry returned error: %v", err)
	}
	if repo.records["a@b.com"].Code == firstCode {
		t.Fatal("expected the expired code to be replaced")
	}
}

func TestOTPService_VerifyMismatchKeepsRecord(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)
	svc.generate = func() (string, error) { return "654321", nil }

	if err := svc.Send(ctx, OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "Hi"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if _, err := svc.Verify(ctx, "a@b.com", "111111"); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if _, ok := repo.records["a@b.com"]; !ok {
		t.Fatal("mismatch must not delete the record")
	}

	// The correct code still works within the expiry window.
	if _, err := svc.Verify(ctx, "a@b.com", "654321"); err != nil {
		t.Fatalf("Verify after mismatch returned error: %v", err)
	}
}

func TestOTPService_VerifyExpired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)
	svc.generate = func() (string, error) { return "654321", nil }

	if err := svc.Send(ctx, OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "Hi"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	base := svc.now()
	svc.now = func() time.Time { return base.Add(10*time.Minute + time.Second) }

	if _, err := svc.Verify(ctx, "a@b.com", "654321"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatal("expected expired record to be deleted")
	}
	if _, err := svc.Verify(ctx, "a@b.com", "654321"); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after expiry cleanup, got %v", err)
	}
}

func TestOTPService_Validation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)

	for _, email := range []string{"not-an-email", "a@b", "", "a b@c.com"} {
		if err := svc.Send(ctx, OTPSendInput{Email: email, Name: "Ana", Message: "Hi"}); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("Send(%q): expected ErrInvalidEmail, got %v", email, err)
		}
		if _, err := svc.Verify(ctx, email, "123456"); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("Verify(%q): expected ErrInvalidEmail, got %v", email, err)
		}
	}

	if err := svc.Send(ctx, OTPSendInput{Email: "a@b.com", Name: "", Message: "Hi"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for empty name, got %v", err)
	}
	if err := svc.Send(ctx, OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "   "}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for blank message, got %v", err)
	}
	if _, err := svc.Verify(ctx, "a@b.com", ""); !errors.Is(err, ErrMissingCode) {
		t.Fatalf("expected ErrMissingCode, got %v", err)
	}

	if mailer.attempts != 0 {
		t.Fatalf("validation failures must not reach the mailer, got %d attempts", mailer.attempts)
	}
	if len(repo.records) != 0 {
		t.Fatal("validation failures must not persist records")
	}
}

func TestOTPService_EmailBodyEscapesUserInput(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{}
	svc := newOTPServiceForTests(repo, mailer)

	err := svc.Send(ctx, OTPSendInput{
		Email:   "a@b.com",
		Name:    "<script>alert(1)</script>",
		Message: "ignored here",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	body := mailer.sent[0].HTML
	if strings.Contains(body, "<script>") {
		t.Fatal("raw markup leaked into the email body")
	}
	if !strings.Contains(body, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("expected escaped name in body, got: %s", body)
	}
}

func TestOTPService_MailFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	mailer := &fakeMailer{err: errors.New("gateway down")}
	svc := newOTPServiceForTests(repo, mailer)
	svc.generate = func() (string, error) { return "654321", nil }

	err := svc.Send(ctx, OTPSendInput{Email: "a@b.com", Name: "Ana", Message: "Hi"})
	if err == nil || !strings.Contains(err.Error(), "gateway down") {
		t.Fatalf("expected gateway error to propagate, got %v", err)
	}

	// No rollback: the code can still verify if the mail did get out.
	if _, ok := repo.records["a@b.com"]; !ok {
		t.Fatal("expected record to survive a dispatch failure")
	}
	if _, err := svc.Verify(ctx, "a@b.com", "654321"); err != nil {
		t.Fatalf("Verify after dispatch failure returned error: %v", err)
	}
}
