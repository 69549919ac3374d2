package ports

import (
	"context"

	"github.com/medilink/directory/internal/core/domain"
)

// CredentialService mutates doctor credentials.
type CredentialService interface {
	ChangeDoctorSecret(ctx context.Context, identifier, currentSecret, newSecret string) (bool, error)
	RegisterDoctor(ctx context.Context, profile domain.DoctorProfile, cred domain.DoctorCredential) error
}
