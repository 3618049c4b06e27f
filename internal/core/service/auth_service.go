package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

// genericResetMessage is returned for every forgot-password request so the
// endpoint cannot be used to enumerate registered addresses.
const genericResetMessage = "If an account exists, an email with a reset link has been sent"

// ResetThrottle suppresses repeat password-reset emails to the same address
// within a cooldown window (Redis-backed in production).
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// AuthService implements registration, login and the password-reset flow.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	mail     ports.MailQueue
	throttle ResetThrottle
	logger   zerolog.Logger

	// resetBaseURL is the frontend page the reset link points at.
	resetBaseURL string
	// debugResetLinks includes the minted reset link in responses outside
	// production, mirroring the dev email flow.
	debugResetLinks bool
}

type AuthServiceConfig struct {
	ResetBaseURL    string
	DebugResetLinks bool
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, mail ports.MailQueue, throttle ResetThrottle, cfg AuthServiceConfig, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:           users,
		tokens:          tokens,
		mail:            mail,
		throttle:        throttle,
		logger:          logger,
		resetBaseURL:    cfg.ResetBaseURL,
		debugResetLinks: cfg.DebugResetLinks,
	}
}

// Register creates a new account with role USER. The existence pre-checks
// are best-effort; the unique indexes are the final arbiter, and a racing
// duplicate insert surfaces from the repository as the same typed errors.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair. An
// unknown username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("login failed: password mismatch")
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The token
// must validate strictly as kind refresh and its subject must still resolve
// to an existing account.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return s.issuePair(user)
}

// ForgotPassword always responds with the same generic message. When the
// account exists (and the throttle allows it) a reset token is stored on the
// user and an email is queued.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ports.ForgotPasswordResult, error) {
	result := &ports.ForgotPasswordResult{Message: genericResetMessage}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info().Str("email", email).Msg("password reset requested for unknown email")
			return result, nil
		}
		return nil, err
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			// throttle outage must not block password recovery
			s.logger.Warn().Err(err).Msg("reset throttle unavailable, proceeding")
		} else if !allowed {
			s.logger.Info().Str("email", email).Msg("password reset suppressed by cooldown")
			return result, nil
		}
	}

	token, err := s.tokens.IssuePasswordResetToken(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, time.Now().Add(s.tokens.ResetTTL())); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token)
	s.mail.Enqueue(ports.MailJob{To: user.Email, ResetLink: link})
	s.logger.Info().Str("email", user.Email).Msg("password reset email queued")

	if s.debugResetLinks {
		result.DebugLink = link
	}
	return result, nil
}

// ResetPassword consumes a reset token. The token must carry a valid
// password_reset claim AND match the token stored on the account, whose own
// expiry is checked as well; both reset fields are cleared on success.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	claims, err := s.tokens.Validate(token, domain.TokenKindPasswordReset)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if user.ResetToken == "" || user.ResetToken != token || user.ResetTokenExpired(time.Now()) {
		return domain.ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.CompletePasswordReset(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("username", user.Username).Msg("password reset completed")
	return nil
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.Email, map[string]any{
		"username": user.Username,
		"role":     user.Role,
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
