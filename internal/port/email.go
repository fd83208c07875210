package port

import "context"

// EmailMessage is a plain-text notification.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// EmailSender delivers notifications to practice staff.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
