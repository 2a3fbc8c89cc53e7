package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/moizrehman/portfolio-api/internal/service"
)

func newContactTestServer(mailer *stubMailer) *echo.Echo {
	e := NewRouter([]string{"*"})
	svc := service.NewContactService(mailer, service.ContactServiceConfig{
		OwnerEmail: "owner@example.com",
		OwnerName:  "Moiz Rehman",
	})
	RegisterContact(e, svc)
	return e
}

func TestContactHandler_Success(t *testing.T) {
	mailer := &stubMailer{}
	e := newContactTestServer(mailer)

	rec := postJSON(e, "/send-contact-email", `{"name":"Ana","email":"a@b.com","message":"Hello!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true || body["message"] != "Emails sent successfully" {
		t.Fatalf("unexpected body %v", body)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected two emails, got %d", len(mailer.sent))
	}
	if mailer.sent[0].To != "owner@example.com" {
		t.Fatalf("expected owner notification first, got %q", mailer.sent[0].To)
	}
	if mailer.sent[1].To != "a@b.com" {
		t.Fatalf("expected sender confirmation second, got %q", mailer.sent[1].To)
	}
}

func TestContactHandler_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		message string
	}{
		{"missing name", `{"email":"a@b.com","message":"Hi"}`, "Name, email, and message are required"},
		{"missing message", `{"name":"Ana","email":"a@b.com"}`, "Name, email, and message are required"},
		{"missing email", `{"name":"Ana","message":"Hi"}`, "Name, email, and message are required"},
		{"invalid email", `{"name":"Ana","email":"a@b","message":"Hi"}`, "Invalid email format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mailer := &stubMailer{}
			e := newContactTestServer(mailer)

			rec := postJSON(e, "/send-contact-email", tc.payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
			if got := decodeBody(t, rec)["error"]; got != tc.message {
				t.Fatalf("expected error %q, got %v", tc.message, got)
			}
			if len(mailer.sent) != 0 {
				t.Fatal("no email may be dispatched on a validation failure")
			}
		})
	}
}

func TestContactHandler_GatewayFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("gateway down")}
	e := newContactTestServer(mailer)

	rec := postJSON(e, "/send-contact-email", `{"name":"Ana","email":"a@b.com","message":"Hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["error"]; got != "gateway down" {
		t.Fatalf("expected the gateway error passed through, got %v", got)
	}
}
