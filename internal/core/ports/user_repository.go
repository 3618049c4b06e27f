package ports

import (
	"context"
	"time"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// The database enforces uniqueness of username and email; Create surfaces a
// constraint violation as domain.ErrUsernameTaken / domain.ErrEmailTaken so
// a racing duplicate insert never becomes a generic 500.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// SetResetToken stores a password-reset token and its expiry on the user.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	// CompletePasswordReset swaps in the new password hash and clears both
	// reset-token fields in one write.
	CompletePasswordReset(ctx context.Context, userID, passwordHash string) error
}
