package domain

import "time"

// Session is the persisted proof that an actor is signed in. At most one
// Session exists per storage namespace.
type Session struct {
	ID             string    `json:"session_id"`
	SubjectID      string    `json:"id"`
	DisplayName    string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Role           Role      `json:"role"`
	RoleSpecificID string    `json:"role_specific_id,omitempty"`
	Provider       string    `json:"provider,omitempty"`
	IssuedAt       time.Time `json:"issued_at"`
}

// ProviderClaims are the identity claims asserted by an external sign-in
// provider.
type ProviderClaims struct {
	Provider string
	UID      string
	Email    string
	Name     string
}
