package domain

// Resolution is the result of running the credential ladder. It is either
// Resolved or Unresolved.
type Resolution interface {
	resolution()
}

// Resolved carries the identity a credential pair resolved to.
type Resolved struct {
	Role           Role
	SubjectID      string
	DisplayName    string
	Email          string
	RoleSpecificID string
}

// UnresolvedReason is kept for diagnostics only and is never shown to callers.
type UnresolvedReason string

const (
	ReasonNoMatch            UnresolvedReason = "no_match"
	ReasonOrphanedCredential UnresolvedReason = "orphaned_credential"
)

// Unresolved means no identity class accepted the credentials.
type Unresolved struct {
	Reason   UnresolvedReason
	DoctorID DoctorID
}

func (Resolved) resolution()   {}
func (Unresolved) resolution() {}
