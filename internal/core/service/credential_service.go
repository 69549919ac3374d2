package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/core/ports"
)

// DoctorResolver verifies doctor credentials only.
type DoctorResolver interface {
	ResolveDoctor(ctx context.Context, identifier, secret string) (domain.Resolution, error)
}

// SessionTerminator ends the active session.
type SessionTerminator interface {
	Logout(ctx context.Context) error
}

// CredentialService changes and registers doctor credentials. mu serialises
// every read-modify-write of the credential collection.
type CredentialService struct {
	mu       sync.Mutex
	resolver DoctorResolver
	creds    ports.CredentialStore
	sessions SessionTerminator
	log      zerolog.Logger
}

func NewCredentialService(resolver DoctorResolver, creds ports.CredentialStore, sessions SessionTerminator, log zerolog.Logger) *CredentialService {
	return &CredentialService{resolver: resolver, creds: creds, sessions: sessions, log: log}
}

// ChangeDoctorSecret re-verifies identifier and currentSecret against the
// doctor credentials, stores newSecret and ends the active session. It
// returns false without mutating anything when verification fails.
func (s *CredentialService) ChangeDoctorSecret(ctx context.Context, identifier, currentSecret, newSecret string) (bool, error) {
	if newSecret == "" {
		return false, domain.ErrInvalidSecret
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.resolver.ResolveDoctor(ctx, identifier, currentSecret)
	if err != nil {
		return false, domain.NewStorageError("verify doctor credential", err)
	}

	switch r := res.(type) {
	case domain.Unresolved:
		s.log.Debug().Str("reason", string(r.Reason)).Msg("secret change rejected")
		return false, nil
	case domain.Resolved:
	default:
		return false, fmt.Errorf("change secret: unexpected resolution %T", res)
	}

	err = s.creds.ReplaceDoctorCredential(ctx, identifier, currentSecret, newSecret)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		return false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store new secret")
		return false, domain.NewStorageError("replace doctor credential", err)
	}

	s.log.Info().Msg("doctor secret changed")

	if err := s.sessions.Logout(ctx); err != nil {
		return true, fmt.Errorf("secret changed but session not cleared: %w", err)
	}
	return true, nil
}

// RegisterDoctor stores a doctor profile and a credential owned by it.
// Identifiers already used by a built-in account or another doctor, and
// profile ids already taken, are rejected with domain.ErrCredentialExists.
// A failed credential write removes the profile again.
func (s *CredentialService) RegisterDoctor(ctx context.Context, profile domain.DoctorProfile, cred domain.DoctorCredential) error {
	if profile.ID == "" || profile.Name == "" {
		return domain.ErrInvalidProfile
	}
	cred.DoctorID = profile.ID
	ids := cred.Identifiers()
	if len(ids) == 0 || cred.Secret == "" {
		return domain.ErrInvalidCredential
	}
	for _, id := range ids {
		if domain.IsReservedIdentifier(id) {
			return domain.ErrCredentialExists
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.creds.ListDoctorCredentials(ctx)
	if err != nil {
		return domain.NewStorageError("list doctor credentials", err)
	}
	for _, e := range existing {
		for _, id := range ids {
			if e.Matches(id) {
				return domain.ErrCredentialExists
			}
		}
	}

	_, err = s.creds.GetDoctorProfile(ctx, profile.ID)
	switch {
	case err == nil:
		return domain.ErrCredentialExists
	case !errors.Is(err, domain.ErrProfileNotFound):
		return domain.NewStorageError("get doctor profile", err)
	}

	if err := s.creds.PutDoctorProfile(ctx, profile); err != nil {
		return domain.NewStorageError("put doctor profile", err)
	}
	if err := s.creds.AddDoctorCredential(ctx, cred); err != nil {
		if rbErr := s.creds.DeleteDoctorProfile(ctx, profile.ID); rbErr != nil {
			s.log.Error().Err(rbErr).Str("doctor_id", profile.ID.String()).Msg("failed to remove profile after credential write failed")
		}
		if errors.Is(err, domain.ErrCredentialExists) {
			return err
		}
		return domain.NewStorageError("add doctor credential", err)
	}

	s.log.Info().Str("doctor_id", profile.ID.String()).Msg("doctor registered")
	return nil
}
