package domain

import "errors"

// LoginOutcome classifies the result of a login attempt.
type LoginOutcome string

const (
	OutcomeSuccess            LoginOutcome = "success"
	OutcomeInvalidCredentials LoginOutcome = "invalid_credentials"
	OutcomeStorageError       LoginOutcome = "storage_error"
)

// OutcomeOf maps the error returned by a login operation to its outcome.
// Errors that are neither credential nor storage failures count as storage
// errors so they are never reported as a bad password.
func OutcomeOf(err error) LoginOutcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	default:
		return OutcomeStorageError
	}
}
