package mail

import "context"

// Message is one outbound email. ReplyTo is optional.
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer dispatches a single email through a transactional-email gateway.
// There is no retry policy; gateway errors propagate to the caller as-is.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
