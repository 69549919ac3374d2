package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/infrastructure/kv"
)

// SessionStore implements ports.SessionStore over the "user" key.
type SessionStore struct {
	keys keyspace
}

func NewSessionStore(store kv.Store, namespace string) *SessionStore {
	return &SessionStore{keys: keyspace{kv: store, namespace: namespace}}
}

// sessionRecord is the persisted form. Role is kept as text so that legacy
// role names can be mapped on read, and ids decode from numbers as well as
// strings since the web client wrote numeric doctor ids. The client stored
// the role-specific id under doctorId or affiliateId; both are written and
// read as a fallback for role_specific_id.
type sessionRecord struct {
	ID             string          `json:"session_id,omitempty"`
	SubjectID      domain.DoctorID `json:"id"`
	DisplayName    string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Role           string          `json:"role"`
	RoleSpecificID domain.DoctorID `json:"role_specific_id,omitempty"`
	DoctorID       domain.DoctorID `json:"doctorId,omitempty"`
	AffiliateID    domain.DoctorID `json:"affiliateId,omitempty"`
	Provider       string          `json:"provider,omitempty"`
	IssuedAt       time.Time       `json:"issued_at"`
}

func (s *SessionStore) ReadSession(ctx context.Context) (*domain.Session, error) {
	var rec *sessionRecord
	found, err := s.keys.load(ctx, keySession, &rec)
	if err != nil {
		return nil, err
	}
	if !found || rec == nil {
		return nil, domain.ErrNoSession
	}

	role, err := domain.ParseRole(rec.Role)
	if err != nil {
		return nil, domain.NewStorageError("decode user", err)
	}
	if rec.SubjectID == "" {
		return nil, domain.NewStorageError("decode user", fmt.Errorf("session has no subject"))
	}

	return &domain.Session{
		ID:             rec.ID,
		SubjectID:      rec.SubjectID.String(),
		DisplayName:    rec.DisplayName,
		Email:          rec.Email,
		Role:           role,
		RoleSpecificID: rec.roleSpecificID(role),
		Provider:       rec.Provider,
		IssuedAt:       rec.IssuedAt,
	}, nil
}

func (r *sessionRecord) roleSpecificID(role domain.Role) string {
	if r.RoleSpecificID != "" {
		return r.RoleSpecificID.String()
	}
	switch role {
	case domain.RoleDoctor:
		return r.DoctorID.String()
	case domain.RoleAffiliate:
		return r.AffiliateID.String()
	}
	return ""
}

func (s *SessionStore) WriteSession(ctx context.Context, session *domain.Session) error {
	rec := sessionRecord{
		ID:             session.ID,
		SubjectID:      domain.DoctorID(session.SubjectID),
		DisplayName:    session.DisplayName,
		Email:          session.Email,
		Role:           session.Role.String(),
		RoleSpecificID: domain.DoctorID(session.RoleSpecificID),
		Provider:       session.Provider,
		IssuedAt:       session.IssuedAt,
	}
	switch session.Role {
	case domain.RoleDoctor:
		rec.DoctorID = rec.RoleSpecificID
	case domain.RoleAffiliate:
		rec.AffiliateID = rec.RoleSpecificID
	}
	return s.keys.save(ctx, keySession, rec)
}

func (s *SessionStore) ClearSession(ctx context.Context) error {
	if err := s.keys.kv.Delete(ctx, s.keys.key(keySession)); err != nil {
		return domain.NewStorageError("clear user", err)
	}
	return nil
}
