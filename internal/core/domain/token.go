package domain

import (
	"errors"
	"fmt"
)

// TokenKind discriminates what a token may be used for. A token minted for
// one purpose must never be accepted for another.
type TokenKind string

const (
	TokenKindAccess        TokenKind = "access"
	TokenKindRefresh       TokenKind = "refresh"
	TokenKindPasswordReset TokenKind = "password_reset"
)

// ErrInvalidToken is the umbrella token error; the specific failures below
// all wrap it, so callers can match the family with errors.Is and map it to
// a single 401 without inspecting the cause.
var ErrInvalidToken = errors.New("invalid token")

var (
	ErrTokenSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenWrongKind = fmt.Errorf("%w: wrong token kind", ErrInvalidToken)
)
