package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/core/ports"
)

// DoctorHandler serves the administrator's doctor onboarding endpoint.
type DoctorHandler struct {
	creds ports.CredentialService
	log   zerolog.Logger
}

func NewDoctorHandler(creds ports.CredentialService, log zerolog.Logger) *DoctorHandler {
	return &DoctorHandler{creds: creds, log: log}
}

// Register stores a doctor profile and issues its login credential.
//
// @Summary      Register a doctor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string  true  "session_id returned by login"
// @Param        body  body      registerDoctorRequest  true  "Doctor profile and credential"
// @Success      201   {object}  registerDoctorResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/admin/doctors [post]
func (h *DoctorHandler) Register(c echo.Context) error {
	var req registerDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, cred := req.toDomain()
	if err := h.creds.RegisterDoctor(c.Request().Context(), profile, cred); err != nil {
		return err
	}

	evt := h.log.Info().Str("doctor_id", profile.ID.String())
	if s := ctxSession(c); s != nil {
		evt = evt.Str("by", s.SubjectID)
	}
	evt.Msg("doctor onboarded")

	return c.JSON(http.StatusCreated, registerDoctorResponse{
		ID:          profile.ID.String(),
		Identifiers: cred.Identifiers(),
	})
}
