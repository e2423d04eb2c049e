package ports

import "context"

// Email is a rendered message ready for delivery.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer delivers a single email synchronously.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// MailEnqueuer hands an email to the asynchronous delivery pipeline.
// Delivery is best-effort: enqueueing never fails the calling operation and
// a failed send is logged, not propagated.
type MailEnqueuer interface {
	Enqueue(email Email)
}

// MailComposer renders the account-related notification emails.
type MailComposer interface {
	NewAccountEmail(to, username, password string) Email
	ResetPasswordEmail(to, username, token string) Email
}
