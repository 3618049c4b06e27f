package ports

import (
	"time"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// TokenClaims is the validated content of a token.
type TokenClaims struct {
	Subject   string
	Kind      domain.TokenKind
	ExpiresAt time.Time
	Extra     map[string]any
}

// TokenService mints and validates the signed bearer tokens used across the
// API. It is the sole authority on the signing secret; everything it does is
// stateless and safe for concurrent use.
type TokenService interface {
	IssueAccessToken(subject string, extra map[string]any) (string, error)
	IssueRefreshToken(subject string) (string, error)
	IssuePasswordResetToken(subject string) (string, error)
	// Validate verifies signature, expiry and kind. Failures are the
	// domain token sentinels, all wrapping domain.ErrInvalidToken.
	Validate(token string, expected domain.TokenKind) (*TokenClaims, error)
	// ExtractSubject decodes the subject after checking the signature but
	// without enforcing expiry. Diagnostic use only.
	ExtractSubject(token string) (string, error)
	// AccessTTL reports the configured access-token lifetime, used to fill
	// the expires_in field of login responses.
	AccessTTL() time.Duration
	// ResetTTL reports the configured password-reset token lifetime. The
	// expiry stored on the user document must match the token's own.
	ResetTTL() time.Duration
}
