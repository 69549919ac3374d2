package domain

import "fmt"

// Role identifies the identity class of an authenticated actor.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGuest     Role = "guest"
	RoleAffiliate Role = "affiliate"
	RoleDoctor    Role = "doctor"
)

// rolePatient is the name older clients persisted for guests signed in
// through an external provider.
const rolePatient = "patient"

var landingViews = map[Role]string{
	RoleAdmin:     "/admin",
	RoleGuest:     "/guest",
	RoleAffiliate: "/affiliate",
	RoleDoctor:    "/doctor",
}

// Roles returns every role in ladder order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleGuest, RoleAffiliate, RoleDoctor}
}

// ParseRole converts a persisted role name into a Role.
func ParseRole(s string) (Role, error) {
	if s == rolePatient {
		return RoleGuest, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := landingViews[r]
	return ok
}

// LandingView is the view a client navigates to after authenticating as r.
func (r Role) LandingView() string {
	return landingViews[r]
}

func (r Role) String() string { return string(r) }
