package ports

import (
	"context"

	"github.com/medilink/directory/internal/core/domain"
)

// CredentialReader is the read surface of the credential store.
type CredentialReader interface {
	// ListDoctorCredentials returns every doctor credential in collection order.
	ListDoctorCredentials(ctx context.Context) ([]domain.DoctorCredential, error)
	// GetDoctorProfile returns domain.ErrProfileNotFound when no profile has the id.
	GetDoctorProfile(ctx context.Context, id domain.DoctorID) (*domain.DoctorProfile, error)
}

// CredentialWriter is the write surface of the credential store.
type CredentialWriter interface {
	// ReplaceDoctorCredential sets the secret of the first credential matching
	// identifier and currentSecret, leaving its identifiers untouched. It
	// returns domain.ErrCredentialNotFound when none matches.
	ReplaceDoctorCredential(ctx context.Context, identifier, currentSecret, newSecret string) error
	AddDoctorCredential(ctx context.Context, cred domain.DoctorCredential) error
	PutDoctorProfile(ctx context.Context, profile domain.DoctorProfile) error
	// DeleteDoctorProfile is a no-op when no profile has the id.
	DeleteDoctorProfile(ctx context.Context, id domain.DoctorID) error
}

// CredentialStore persists doctor credentials and profiles.
type CredentialStore interface {
	CredentialReader
	CredentialWriter
}
