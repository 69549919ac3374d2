package ports

import (
	"context"

	"github.com/medilink/directory/internal/core/domain"
)

// SessionService is the caller-facing session API.
type SessionService interface {
	Login(ctx context.Context, identifier, secret string) (*domain.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*domain.Session, error)
	AdoptExternalIdentity(ctx context.Context, claims domain.ProviderClaims) (*domain.Session, error)
}
