package ports

import (
	"context"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64
}

// ForgotPasswordResult carries the outcome of a forgot-password request.
// The message is identical whether or not the account exists; DebugLink is
// populated only outside production and only when an email was dispatched.
type ForgotPasswordResult struct {
	Message   string
	DebugLink string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error)
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error
}
