package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

const minSecretBytes = 32

// claim keys owned by the service; caller-supplied extras may not shadow them.
const (
	claimKind = "kind"
)

var signingMethod = jwt.SigningMethodHS256

// TokenService mints and validates HS256-signed tokens carrying a subject,
// a kind discriminator and standard time claims. The signing secret is fixed
// at construction and never mutated, so every method is safe for concurrent use.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

// NewTokenService builds a TokenService. Secrets shorter than 32 bytes are
// rejected so a misconfigured deployment fails at startup, not at the first
// forged token.
func NewTokenService(secret string, accessTTL, refreshTTL, resetTTL time.Duration) (*TokenService, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("token service: signing secret must be at least %d bytes, got %d", minSecretBytes, len(secret))
	}
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}, nil
}

func (s *TokenService) IssueAccessToken(subject string, extra map[string]any) (string, error) {
	return s.issue(subject, domain.TokenKindAccess, s.accessTTL, extra)
}

func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, domain.TokenKindRefresh, s.refreshTTL, nil)
}

func (s *TokenService) IssuePasswordResetToken(subject string) (string, error) {
	return s.issue(subject, domain.TokenKindPasswordReset, s.resetTTL, nil)
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *TokenService) ResetTTL() time.Duration {
	return s.resetTTL
}

func (s *TokenService) issue(subject string, kind domain.TokenKind, ttl time.Duration, extra map[string]any) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	// reserved claims win over extras
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	claims["jti"] = uuid.NewString()
	claims[claimKind] = string(kind)

	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Validate verifies signature, expiry and kind. expected may be empty when
// the caller accepts any kind.
func (s *TokenService) Validate(token string, expected domain.TokenKind) (*ports.TokenClaims, error) {
	claims, err := s.parse(token, false)
	if err != nil {
		return nil, err
	}
	out, err := s.toClaims(claims)
	if err != nil {
		return nil, err
	}
	if expected != "" && out.Kind != expected {
		return nil, domain.ErrTokenWrongKind
	}
	return out, nil
}

// ExtractSubject decodes the subject after a signature check, skipping
// expiry validation. Used for diagnostics, never for authentication.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.parse(token, true)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrTokenMalformed
	}
	return sub, nil
}

func (s *TokenService) parse(token string, skipExpiry bool) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{signingMethod.Alg()})}
	if skipExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		// every issued token carries exp, so one without it is forged
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) toClaims(claims jwt.MapClaims) (*ports.TokenClaims, error) {
	sub, _ := claims["sub"].(string)
	kind, _ := claims[claimKind].(string)
	if sub == "" || kind == "" {
		return nil, domain.ErrTokenMalformed
	}

	out := &ports.TokenClaims{
		Subject: sub,
		Kind:    domain.TokenKind(kind),
		Extra:   make(map[string]any),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	for k, v := range claims {
		switch k {
		case "sub", "iat", "exp", "jti", claimKind:
		default:
			out.Extra[k] = v
		}
	}
	return out, nil
}

// classifyParseError maps jwt/v5 parser failures onto the domain token
// sentinels so the rest of the system never sees library error types.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
}
