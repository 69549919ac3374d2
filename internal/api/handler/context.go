package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medilink/directory/internal/core/domain"
)

// Keys set on echo.Context by the middleware package.
const (
	ctxKeySession        = "session"
	ctxKeyProviderClaims = "provider_claims"
)

// ctxProviderClaims extracts the claims injected by the ProviderToken
// middleware. Their absence means the route was mounted without it.
func ctxProviderClaims(c echo.Context) (domain.ProviderClaims, error) {
	claims, ok := c.Get(ctxKeyProviderClaims).(domain.ProviderClaims)
	if !ok {
		return domain.ProviderClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing provider identity")
	}
	return claims, nil
}

// ctxSession returns the session attached by RequireRole, if any.
func ctxSession(c echo.Context) *domain.Session {
	s, _ := c.Get(ctxKeySession).(*domain.Session)
	return s
}
