package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/radnom/storefront-api/internal/api/metrics"
	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRole     = "role"
)

// Auth is the authentication gate. It validates the bearer token strictly as
// an access token, resolves the subject against the user store and injects
// the authenticated identity into the request context. There is no anonymous
// fallback: requests without a valid token are rejected outright.
//
// The gate never writes to the store and never mints tokens. Clients always
// receive the same generic 401; the specific failure is logged and counted
// server-side only.
func Auth(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// CORS preflight carries no credentials
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid authorization header")
			}

			claims, err := tokens.Validate(token, domain.TokenKindAccess)
			if err != nil {
				reason := rejectionReason(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Warn().
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("bearer token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("unknown_subject").Inc()
					log.Warn().Str("path", c.Path()).Msg("token subject no longer resolves")
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				return err
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxUsername, user.Username)
			c.Set(CtxEmail, user.Email)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignature):
		return "signature"
	case errors.Is(err, domain.ErrTokenWrongKind):
		return "wrong_kind"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
