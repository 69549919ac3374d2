package localstore

import (
	"context"

	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/infrastructure/kv"
)

// CredentialStore implements ports.CredentialStore. Each collection is a
// single JSON array rewritten as a whole on every change; callers serialise
// writes.
type CredentialStore struct {
	keys keyspace
}

func NewCredentialStore(store kv.Store, namespace string) *CredentialStore {
	return &CredentialStore{keys: keyspace{kv: store, namespace: namespace}}
}

func (s *CredentialStore) ListDoctorCredentials(ctx context.Context) ([]domain.DoctorCredential, error) {
	var creds []domain.DoctorCredential
	if _, err := s.keys.load(ctx, keyCredentials, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

func (s *CredentialStore) GetDoctorProfile(ctx context.Context, id domain.DoctorID) (*domain.DoctorProfile, error) {
	profiles, err := s.listProfiles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (s *CredentialStore) ReplaceDoctorCredential(ctx context.Context, identifier, currentSecret, newSecret string) error {
	creds, err := s.ListDoctorCredentials(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range creds {
		if creds[i].Matches(identifier) && creds[i].Secret == currentSecret {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrCredentialNotFound
	}

	creds[idx].Secret = newSecret
	return s.keys.save(ctx, keyCredentials, creds)
}

func (s *CredentialStore) AddDoctorCredential(ctx context.Context, cred domain.DoctorCredential) error {
	creds, err := s.ListDoctorCredentials(ctx)
	if err != nil {
		return err
	}
	for _, existing := range creds {
		for _, id := range cred.Identifiers() {
			if existing.Matches(id) {
				return domain.ErrCredentialExists
			}
		}
	}
	return s.keys.save(ctx, keyCredentials, append(creds, cred))
}

// PutDoctorProfile replaces the profile with the same id, or appends it.
func (s *CredentialStore) PutDoctorProfile(ctx context.Context, profile domain.DoctorProfile) error {
	profiles, err := s.listProfiles(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range profiles {
		if profiles[i].ID == profile.ID {
			profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, profile)
	}
	return s.keys.save(ctx, keyProfiles, profiles)
}

func (s *CredentialStore) DeleteDoctorProfile(ctx context.Context, id domain.DoctorID) error {
	profiles, err := s.listProfiles(ctx)
	if err != nil {
		return err
	}

	kept := profiles[:0]
	for _, p := range profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(profiles) {
		return nil
	}
	return s.keys.save(ctx, keyProfiles, kept)
}

func (s *CredentialStore) listProfiles(ctx context.Context) ([]domain.DoctorProfile, error) {
	var profiles []domain.DoctorProfile
	if _, err := s.keys.load(ctx, keyProfiles, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
