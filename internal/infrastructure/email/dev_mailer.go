// Package email contains outbound mail implementations. Only a development
// mailer exists today; production SMTP would slot in behind the same port.
package email

import (
	"context"

	"github.com/rs/zerolog"
)

// DevMailer "sends" password-reset email by logging the reset link. Used in
// development and tests so no SMTP server is needed.
type DevMailer struct {
	logger zerolog.Logger
}

func NewDevMailer(logger zerolog.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (m *DevMailer) SendPasswordReset(_ context.Context, to, resetLink string) error {
	m.logger.Info().
		Str("to", to).
		Str("reset_link", resetLink).
		Msg("password reset email (dev: logged, not sent)")
	return nil
}
