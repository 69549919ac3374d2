package domain

// BuiltinAccount is a fixed account compiled into the application. Built-in
// accounts have no mutable credential record.
type BuiltinAccount struct {
	Identifier     string
	Secret         string
	SubjectID      string
	DisplayName    string
	Email          string
	Role           Role
	RoleSpecificID string
}

var builtinAccounts = [...]BuiltinAccount{
	{
		Identifier:  "admin",
		Secret:      "admin",
		SubjectID:   "admin",
		DisplayName: "Admin",
		Email:       "admin@example.com",
		Role:        RoleAdmin,
	},
	{
		Identifier:  "guest",
		Secret:      "guest",
		SubjectID:   "guest",
		DisplayName: "Patient",
		Email:       "guest@example.com",
		Role:        RoleGuest,
	},
	{
		Identifier:     "affiliate",
		Secret:         "affiliate",
		SubjectID:      "affiliate1",
		DisplayName:    "Affilié",
		Email:          "affiliate@example.com",
		Role:           RoleAffiliate,
		RoleSpecificID: "aff1",
	},
}

// BuiltinAccounts returns the built-in accounts in the order they must be
// checked. The returned slice is a copy.
func BuiltinAccounts() []BuiltinAccount {
	out := make([]BuiltinAccount, len(builtinAccounts))
	copy(out, builtinAccounts[:])
	return out
}

// IsReservedIdentifier reports whether id is claimed by a built-in account.
func IsReservedIdentifier(id string) bool {
	for _, a := range builtinAccounts {
		if a.Identifier == id {
			return true
		}
	}
	return false
}
