package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/core/ports"
)

// Resolver abstracts the credential ladder.
type Resolver interface {
	Resolve(ctx context.Context, identifier, secret string) (domain.Resolution, error)
}

// SessionManager owns the session slot. Every operation holds mu for its whole
// duration, so no two operations interleave against the store.
type SessionManager struct {
	mu       sync.Mutex
	resolver Resolver
	store    ports.SessionStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewSessionManager(resolver Resolver, store ports.SessionStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		resolver: resolver,
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// Login resolves the credentials and, on success, replaces the stored
// session. A failed attempt leaves any existing session in place.
func (m *SessionManager) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.resolver.Resolve(ctx, identifier, secret)
	if err != nil {
		m.log.Error().Err(err).Msg("credential resolution failed")
		return nil, domain.NewStorageError("resolve credentials", err)
	}

	switch r := res.(type) {
	case domain.Resolved:
		session := m.newSession(r, "")
		if err := m.store.WriteSession(ctx, session); err != nil {
			m.log.Error().Err(err).Str("role", r.Role.String()).Msg("failed to persist session")
			return nil, domain.NewStorageError("write session", err)
		}
		m.log.Info().Str("subject_id", session.SubjectID).Str("role", session.Role.String()).Msg("session opened")
		return session, nil
	case domain.Unresolved:
		m.log.Debug().Str("reason", string(r.Reason)).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("login: unexpected resolution %T", res)
	}
}

// AdoptExternalIdentity opens a guest session for an identity asserted by an
// external sign-in provider. The credential ladder is not consulted.
func (m *SessionManager) AdoptExternalIdentity(ctx context.Context, claims domain.ProviderClaims) (*domain.Session, error) {
	if claims.UID == "" {
		return nil, domain.ErrInvalidProviderClaims
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	session := m.newSession(domain.Resolved{
		Role:        domain.RoleGuest,
		SubjectID:   claims.UID,
		DisplayName: name,
		Email:       claims.Email,
	}, claims.Provider)

	if err := m.store.WriteSession(ctx, session); err != nil {
		m.log.Error().Err(err).Str("provider", claims.Provider).Msg("failed to persist external session")
		return nil, domain.NewStorageError("write session", err)
	}
	m.log.Info().Str("subject_id", session.SubjectID).Str("provider", claims.Provider).Msg("external identity adopted")
	return session, nil
}

// Logout clears the session slot. It succeeds when no session exists.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Error().Err(err).Msg("failed to clear session")
		return domain.NewStorageError("clear session", err)
	}
	m.log.Info().Msg("session closed")
	return nil
}

// CurrentSession reads the slot through to the store on every call. It
// returns domain.ErrNoSession when nobody is signed in.
func (m *SessionManager) CurrentSession(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(ctx)
}

// Restore reads the persisted session once at start-up.
func (m *SessionManager) Restore(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.read(ctx)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		m.log.Info().Msg("no persisted session")
	case err != nil:
		m.log.Error().Err(err).Msg("persisted session unreadable")
	default:
		m.log.Info().Str("subject_id", session.SubjectID).Str("role", session.Role.String()).Msg("session restored")
	}
	return session, err
}

func (m *SessionManager) read(ctx context.Context) (*domain.Session, error) {
	session, err := m.store.ReadSession(ctx)
	if errors.Is(err, domain.ErrNoSession) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, domain.NewStorageError("read session", err)
	}
	return session, nil
}

func (m *SessionManager) newSession(r domain.Resolved, provider string) *domain.Session {
	return &domain.Session{
		ID:             uuid.NewString(),
		SubjectID:      r.SubjectID,
		DisplayName:    r.DisplayName,
		Email:          r.Email,
		Role:           r.Role,
		RoleSpecificID: r.RoleSpecificID,
		Provider:       provider,
		IssuedAt:       m.now().UTC(),
	}
}
