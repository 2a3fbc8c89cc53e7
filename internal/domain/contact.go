package domain

// ContactSubmission is a contact-form payload. It is never persisted on its
// own; the fields ride along on the OTP record so the caller does not have to
// re-enter them after verification.
type ContactSubmission struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Message  string  `json:"message"`
	FileName *string `json:"fileName"`
}
