package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/api/metrics"
	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/core/ports"
)

// AuthHandler serves the session and credential endpoints.
type AuthHandler struct {
	sessions ports.SessionService
	creds    ports.CredentialService
	log      zerolog.Logger
}

func NewAuthHandler(sessions ports.SessionService, creds ports.CredentialService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, creds: creds, log: log}
}

// Login resolves credentials and opens a session.
//
// @Summary      Log in
// @Description  Checks the built-in accounts, then doctor credentials. The response names the landing view for the resolved role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Identifier and secret"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	session, err := h.sessions.Login(c.Request().Context(), req.Identifier, req.Secret)

	var role domain.Role
	if session != nil {
		role = session.Role
	}
	metrics.ObserveLogin(err, role, start)

	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginResponse(session))
}

// Logout ends the current session. It succeeds when nobody is signed in.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Failure      503  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  currentSessionResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := h.sessions.CurrentSession(c.Request().Context())
	if errors.Is(err, domain.ErrNoSession) {
		return c.JSON(http.StatusOK, currentSessionResponse{Authenticated: false})
	}
	if err != nil {
		return err
	}

	resp := toSessionResponse(session)
	return c.JSON(http.StatusOK, currentSessionResponse{
		Authenticated: true,
		Landing:       session.Role.LandingView(),
		Session:       &resp,
	})
}

// ChangePassword replaces a doctor's secret and ends the current session.
//
// @Summary      Change a doctor secret
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Doctor identifier, current and new secret"
// @Success      200   {object}  changePasswordResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	changed, err := h.creds.ChangeDoctorSecret(c.Request().Context(), req.Identifier, req.CurrentSecret, req.NewSecret)
	if !changed {
		if err != nil {
			metrics.SecretChangesTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.SecretChangesTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidCredentials
	}

	metrics.SecretChangesTotal.WithLabelValues("changed").Inc()
	if err != nil {
		h.log.Warn().Err(err).Msg("secret changed but session not cleared")
	}
	return c.JSON(http.StatusOK, changePasswordResponse{Changed: true, SessionCleared: err == nil})
}

// External opens a guest session for an identity asserted by a sign-in
// provider token.
//
// @Summary      Adopt an external identity
// @Tags         auth
// @Produce      json
// @Security     ProviderToken
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/auth/external [post]
func (h *AuthHandler) External(c echo.Context) error {
	claims, err := ctxProviderClaims(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.AdoptExternalIdentity(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	provider := claims.Provider
	if provider == "" {
		provider = "unknown"
	}
	metrics.ExternalAdoptionsTotal.WithLabelValues(provider).Inc()

	return c.JSON(http.StatusOK, toLoginResponse(session))
}
