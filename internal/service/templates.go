package service

import (
	"fmt"
	"strings"

	"github.com/moizrehman/portfolio-api/internal/domain"
)

// htmlEscaper neutralizes the five HTML-significant characters before any
// user-supplied text is placed into an email body.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func nl2br(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}

func verificationEmailHTML(name, code string, ttlMinutes int, ownerName string) string {
	var b strings.Builder
	b.WriteString("<h2>Email Verification</h2>\n")
	fmt.Fprintf(&b, "<p>Hi %s,</p>\n", escapeHTML(name))
	b.WriteString("<p>Please use the following code to verify your email before sending your message:</p>\n")
	b.WriteString(`<div style="text-align: center; margin: 30px 0;">` + "\n")
	fmt.Fprintf(&b, `  <span style="font-size: 32px; font-weight: bold; letter-spacing: 8px; background: #f4f4f4; padding: 16px 32px; border-radius: 8px; display: inline-block;">%s</span>`+"\n", code)
	b.WriteString("</div>\n")
	fmt.Fprintf(&b, "<p>This code expires in %d minutes.</p>\n", ttlMinutes)
	b.WriteString("<p>If you didn't request this, you can safely ignore this email.</p>\n")
	fmt.Fprintf(&b, "<p>Best regards,<br>%s</p>", escapeHTML(ownerName))
	return b.String()
}

func ownerNotificationHTML(sub domain.ContactSubmission) string {
	safeName := escapeHTML(sub.Name)
	safeMessage := nl2br(escapeHTML(sub.Message))

	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", safeName)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", escapeHTML(sub.Email))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", safeMessage)
	if sub.FileName != nil && strings.TrimSpace(*sub.FileName) != "" {
		fmt.Fprintf(&b, "<p><strong>Attached File:</strong> %s (User mentioned they have a file to share)</p>\n", escapeHTML(*sub.FileName))
	}
	b.WriteString("<hr>\n")
	fmt.Fprintf(&b, "<p><em>Reply directly to this email to respond to %s.</em></p>", safeName)
	return b.String()
}

func confirmationEmailHTML(name, message, ownerName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s!</h2>\n", escapeHTML(name))
	b.WriteString("<p>Thank you for contacting me. I've received your message and will get back to you as soon as possible.</p>\n")
	b.WriteString("<p><strong>Your message:</strong></p>\n")
	fmt.Fprintf(&b, `<blockquote style="border-left: 3px solid #10b981; padding-left: 16px; color: #666;">%s</blockquote>`+"\n", nl2br(escapeHTML(message)))
	fmt.Fprintf(&b, "<p>Best regards,<br>%s</p>", escapeHTML(ownerName))
	return b.String()
}
