package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub credential store
// ---------------------------------------------------------------------------

type stubCredentialStore struct {
	creds    []domain.DoctorCredential
	profiles map[domain.DoctorID]domain.DoctorProfile
	listErr  error // if set, ListDoctorCredentials returns this error
	getErr   error // if set, GetDoctorProfile returns this error
	writeErr error // if set, every write returns this error
	addErr   error // if set, AddDoctorCredential returns this error
	writes   int
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{profiles: make(map[domain.DoctorID]domain.DoctorProfile)}
}

func (s *stubCredentialStore) ListDoctorCredentials(_ context.Context) ([]domain.DoctorCredential, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.DoctorCredential, len(s.creds))
	copy(out, s.creds)
	return out, nil
}

func (s *stubCredentialStore) GetDoctorProfile(_ context.Context, id domain.DoctorID) (*domain.DoctorProfile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (s *stubCredentialStore) ReplaceDoctorCredential(_ context.Context, identifier, currentSecret, newSecret string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.creds {
		if s.creds[i].Matches(identifier) && s.creds[i].Secret == currentSecret {
			s.creds[i].Secret = newSecret
			s.writes++
			return nil
		}
	}
	return domain.ErrCredentialNotFound
}

func (s *stubCredentialStore) AddDoctorCredential(_ context.Context, cred domain.DoctorCredential) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	if s.addErr != nil {
		return s.addErr
	}
	s.creds = append(s.creds, cred)
	s.writes++
	return nil
}

func (s *stubCredentialStore) PutDoctorProfile(_ context.Context, p domain.DoctorProfile) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.profiles[p.ID] = p
	s.writes++
	return nil
}

func (s *stubCredentialStore) DeleteDoctorProfile(_ context.Context, id domain.DoctorID) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	delete(s.profiles, id)
	s.writes++
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub session store
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	session  *domain.Session
	readErr  error
	writeErr error
	clearErr error
	writes   int
	clears   int
}

func (s *stubSessionStore) ReadSession(_ context.Context) (*domain.Session, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.session == nil {
		return nil, domain.ErrNoSession
	}
	clone := *s.session
	return &clone, nil
}

func (s *stubSessionStore) WriteSession(_ context.Context, session *domain.Session) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	clone := *session
	s.session = &clone
	s.writes++
	return nil
}

func (s *stubSessionStore) ClearSession(_ context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.session = nil
	s.clears++
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errDiskGone = errors.New("disk gone")

// scenarioStore seeds the single-doctor scenario: d@x.com / p1 owned by doctor 7.
func scenarioStore() *stubCredentialStore {
	store := newStubCredentialStore()
	store.creds = []domain.DoctorCredential{{Email: "d@x.com", Secret: "p1", DoctorID: "7"}}
	store.profiles["7"] = domain.DoctorProfile{ID: "7", Name: "A"}
	return store
}

type fixture struct {
	creds    *stubCredentialStore
	sessions *stubSessionStore
	resolver *IdentityResolver
	manager  *SessionManager
	mutator  *CredentialService
}

func newFixture(creds *stubCredentialStore) *fixture {
	sessions := &stubSessionStore{}
	resolver := NewIdentityResolver(creds, discardLogger)
	manager := NewSessionManager(resolver, sessions, discardLogger)
	return &fixture{
		creds:    creds,
		sessions: sessions,
		resolver: resolver,
		manager:  manager,
		mutator:  NewCredentialService(resolver, creds, manager, discardLogger),
	}
}
