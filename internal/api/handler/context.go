package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/radnom/storefront-api/internal/api/middleware"
)

// ctxIdentity extracts the user id injected by the Auth middleware and
// fast-fails before any service call: a missing id means the middleware
// did not run (or was bypassed), which handlers must treat as unauthenticated.
func ctxIdentity(c echo.Context) (string, error) {
	userID, _ := c.Get(apimw.CtxUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
