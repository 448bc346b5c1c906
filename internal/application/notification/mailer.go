// Package notification defines the outbound email port.
package notification

import "context"

// Message is a plain-text email
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers email
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
