package handler

import (
	"time"

	"github.com/medilink/directory/internal/core/domain"
)

// --- Requests ---

// Login fields are free-form: any string pair, empty or over-long, goes
// through the credential ladder and fails as invalid credentials when it
// matches nothing.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type changePasswordRequest struct {
	Identifier    string `json:"identifier"`
	CurrentSecret string `json:"current_secret"`
	NewSecret     string `json:"new_secret"     validate:"required,max=1024"`
}

// --- Responses ---

type sessionResponse struct {
	ID             string    `json:"session_id"`
	SubjectID      string    `json:"subject_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role"`
	RoleSpecificID string    `json:"role_specific_id,omitempty"`
	Provider       string    `json:"provider,omitempty"`
	IssuedAt       time.Time `json:"issued_at"`
}

type loginResponse struct {
	Role    string          `json:"role"`
	Landing string          `json:"landing"`
	Session sessionResponse `json:"session"`
}

type currentSessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Landing       string           `json:"landing,omitempty"`
	Session       *sessionResponse `json:"session,omitempty"`
}

type changePasswordResponse struct {
	Changed        bool `json:"changed"`
	SessionCleared bool `json:"session_cleared"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		SubjectID:      s.SubjectID,
		Name:           s.DisplayName,
		Email:          s.Email,
		Role:           s.Role.String(),
		RoleSpecificID: s.RoleSpecificID,
		Provider:       s.Provider,
		IssuedAt:       s.IssuedAt,
	}
}

func toLoginResponse(s *domain.Session) loginResponse {
	return loginResponse{
		Role:    s.Role.String(),
		Landing: s.Role.LandingView(),
		Session: toSessionResponse(s),
	}
}
