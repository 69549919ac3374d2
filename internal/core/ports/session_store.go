package ports

import (
	"context"

	"github.com/medilink/directory/internal/core/domain"
)

// SessionStore holds the single session slot of a storage namespace.
type SessionStore interface {
	// ReadSession returns domain.ErrNoSession when the slot is empty.
	ReadSession(ctx context.Context) (*domain.Session, error)
	// WriteSession replaces whatever the slot held.
	WriteSession(ctx context.Context, s *domain.Session) error
	// ClearSession empties the slot. Clearing an empty slot is not an error.
	ClearSession(ctx context.Context) error
}
