package domain

import "time"

// OTPRecord is the single pending verification code for an email address.
// The address is the natural key: a new send for the same address replaces
// the previous record.
type OTPRecord struct {
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	Name      string    `db:"name" json:"name"`
	Message   string    `db:"message" json:"message"`
	FileName  *string   `db:"file_name" json:"fileName,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the record is past its expiry at the given time.
func (r *OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
