package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials    = errors.New("incorrect identifier or secret")
	ErrNoSession             = errors.New("no active session")
	ErrProfileNotFound       = errors.New("doctor profile not found")
	ErrCredentialNotFound    = errors.New("doctor credential not found")
	ErrCredentialExists      = errors.New("doctor credential already exists")
	ErrInvalidCredential     = errors.New("doctor credential needs an email or a username and a secret")
	ErrInvalidSecret         = errors.New("secret must not be empty")
	ErrInvalidProfile        = errors.New("doctor profile needs an id and a name")
	ErrInvalidProviderClaims = errors.New("provider claims carry no subject")
	ErrForbidden             = errors.New("access forbidden")
	ErrStorage               = errors.New("storage unavailable")
)

// StorageError reports a failure of a persistence backend. It matches
// ErrStorage with errors.Is.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err unless it already is a StorageError.
func NewStorageError(op string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
