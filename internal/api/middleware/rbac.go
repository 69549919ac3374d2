package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medilink/directory/internal/core/domain"
)

// HeaderSessionID carries the session_id returned by login. A bearer
// Authorization header with the same value is accepted too.
const HeaderSessionID = "X-Session-ID"

// SessionReader exposes the current session.
type SessionReader interface {
	CurrentSession(ctx context.Context) (*domain.Session, error)
}

// RequireRole admits requests that present the id of the stored session
// while that session has one of the allowed roles. The session is read from
// the store on every request and injected into context under "session".
func RequireRole(sessions SessionReader, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := presentedSessionID(c.Request())
			if presented == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session id")
			}

			session, err := sessions.CurrentSession(c.Request().Context())
			if errors.Is(err, domain.ErrNoSession) {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}
			if err != nil {
				return err
			}

			if session.ID == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(session.ID)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "session id does not match the active session")
			}

			if _, ok := allowed[session.Role]; !ok {
				return domain.ErrForbidden
			}

			c.Set("session", session)
			return next(c)
		}
	}
}

func presentedSessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
