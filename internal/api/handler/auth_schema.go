package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"           validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// --- Response types ---

// Field names follow the public API contract (camelCase), which predates
// this service and is consumed by the existing frontend.

type messageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	Username     string `json:"username"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type forgotPasswordResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	// DebugLink is only populated outside production.
	DebugLink string `json:"debugLink,omitempty"`
}
