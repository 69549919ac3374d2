package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/medilink/directory/internal/core/domain"
	"github.com/medilink/directory/internal/core/ports"
)

// IdentityResolver runs the credential ladder: built-in accounts first, in
// their fixed order, then a single pass over the doctor credentials. The first
// match wins and nothing after it is consulted.
type IdentityResolver struct {
	creds    ports.CredentialReader
	log      zerolog.Logger
	onOrphan func(domain.DoctorID)
}

// ResolverOption configures an IdentityResolver.
type ResolverOption func(*IdentityResolver)

// WithOrphanHook registers fn to be called with the doctor id of every
// credential whose profile is missing.
func WithOrphanHook(fn func(domain.DoctorID)) ResolverOption {
	return func(r *IdentityResolver) { r.onOrphan = fn }
}

func NewIdentityResolver(creds ports.CredentialReader, log zerolog.Logger, opts ...ResolverOption) *IdentityResolver {
	r := &IdentityResolver{creds: creds, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps identifier and secret to a Resolution. A non-nil error is
// always a *domain.StorageError; "no match" is reported as domain.Unresolved.
func (r *IdentityResolver) Resolve(ctx context.Context, identifier, secret string) (domain.Resolution, error) {
	for _, acct := range domain.BuiltinAccounts() {
		if identifier == acct.Identifier && secret == acct.Secret {
			return domain.Resolved{
				Role:           acct.Role,
				SubjectID:      acct.SubjectID,
				DisplayName:    acct.DisplayName,
				Email:          acct.Email,
				RoleSpecificID: acct.RoleSpecificID,
			}, nil
		}
	}
	return r.ResolveDoctor(ctx, identifier, secret)
}

// ResolveDoctor runs only the doctor tier of the ladder.
func (r *IdentityResolver) ResolveDoctor(ctx context.Context, identifier, secret string) (domain.Resolution, error) {
	creds, err := r.creds.ListDoctorCredentials(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list doctor credentials", err)
	}

	var match *domain.DoctorCredential
	for i := range creds {
		if creds[i].Matches(identifier) && creds[i].Secret == secret {
			match = &creds[i]
			break
		}
	}
	if match == nil {
		return domain.Unresolved{Reason: domain.ReasonNoMatch}, nil
	}

	profile, err := r.creds.GetDoctorProfile(ctx, match.DoctorID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		r.log.Warn().Str("doctor_id", match.DoctorID.String()).Msg("doctor credential has no profile")
		if r.onOrphan != nil {
			r.onOrphan(match.DoctorID)
		}
		return domain.Unresolved{Reason: domain.ReasonOrphanedCredential, DoctorID: match.DoctorID}, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("get doctor profile", err)
	}

	return domain.Resolved{
		Role:           domain.RoleDoctor,
		SubjectID:      profile.ID.String(),
		DisplayName:    profile.Name,
		Email:          match.Email,
		RoleSpecificID: profile.ID.String(),
	}, nil
}
