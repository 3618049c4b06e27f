package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
	forgotPasswordFn func(ctx context.Context, email string) (*ports.ForgotPasswordResult, error)
	resetPasswordFn  func(ctx context.Context, token, newPassword, confirmPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) (*ports.ForgotPasswordResult, error) {
	return s.forgotPasswordFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	return s.resetPasswordFn(ctx, token, newPassword, confirmPassword)
}

func newAuthContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "alice@example.com" || password != "sup3rsecret" {
				t.Fatalf("unexpected args: %s %s", username, email)
			}
			return &domain.User{ID: "u1", Username: username, Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"sup3rsecret"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"sup3rsecret"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "username already exists" {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"short"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/register", "not-json")
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
			if username != "alice" || password != "sup3rsecret" {
				t.Fatalf("unexpected args: %s", username)
			}
			pair := &ports.TokenPair{AccessToken: "acc123", RefreshToken: "ref456", ExpiresIn: 86400}
			return pair, &domain.User{Username: "alice", Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/login", `{"username":"alice","password":"sup3rsecret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["accessToken"] != "acc123" || resp["refreshToken"] != "ref456" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if resp["tokenType"] != "Bearer" {
		t.Fatalf("expected Bearer token type, got %v", resp["tokenType"])
	}
	if resp["expiresIn"] != float64(86400) {
		t.Fatalf("unexpected expiresIn: %v", resp["expiresIn"])
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected username: %v", resp["username"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "invalid credentials" {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "ref456" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return &ports.TokenPair{AccessToken: "acc-new", RefreshToken: "ref-new", ExpiresIn: 86400}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/refresh-token", `{"refreshToken":"ref456"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["accessToken"] != "acc-new" || resp["refreshToken"] != "ref-new" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_Refresh_Invalid(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(context.Context, string) (*ports.TokenPair, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/refresh-token", `{"refreshToken":"stale"}`)
	_ = handler.Refresh(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_ForgotPassword_AlwaysGeneric(t *testing.T) {
	stub := &stubAuthService{
		forgotPasswordFn: func(_ context.Context, email string) (*ports.ForgotPasswordResult, error) {
			return &ports.ForgotPasswordResult{Message: "If an account exists, an email with a reset link has been sent"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/forgot-password", `{"email":"whoever@example.com"}`)
	if err := handler.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "If an account exists, an email with a reset link has been sent" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if _, present := resp["debugLink"]; present {
		t.Fatalf("debugLink must be omitted when empty")
	}
}

func TestAuthHandler_ResetPassword_Success(t *testing.T) {
	stub := &stubAuthService{
		resetPasswordFn: func(_ context.Context, token, newPassword, confirmPassword string) error {
			if token != "tok" || newPassword != "newpassword1" {
				t.Fatalf("unexpected args")
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/reset-password", `{"token":"tok","newPassword":"newpassword1","confirmPassword":"newpassword1"}`)
	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ResetPassword_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"mismatch", domain.ErrPasswordMismatch, "passwords do not match"},
		{"bad token", domain.ErrResetTokenInvalid, "invalid or expired token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				resetPasswordFn: func(context.Context, string, string, string) error {
					return tc.err
				},
			}
			handler := NewAuthHandler(stub)

			c, rec := newAuthContext(t, "/api/auth/reset-password", `{"token":"tok","newPassword":"newpassword1","confirmPassword":"other1234"}`)
			_ = handler.ResetPassword(c)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.want {
				t.Fatalf("unexpected error: %v", resp["error"])
			}
		})
	}
}
