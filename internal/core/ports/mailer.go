package ports

import "context"

// MailJob is a queued outbound email. Only password-reset mail exists today.
type MailJob struct {
	To        string
	ResetLink string
}

// Mailer delivers a single password-reset email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// MailQueue accepts mail jobs for asynchronous delivery, keeping SMTP
// latency off the request path.
type MailQueue interface {
	Enqueue(job MailJob)
}
