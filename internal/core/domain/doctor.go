package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DoctorID identifies a doctor profile. It is always handled as text; the
// decoder also accepts the numeric ids written by the web client.
type DoctorID string

// UnmarshalJSON accepts either a JSON string or a JSON number and keeps the
// literal text of numbers unchanged.
func (id *DoctorID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = DoctorID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("doctor id: %w", err)
	}
	*id = DoctorID(n.String())
	return nil
}

func (id DoctorID) String() string { return string(id) }

// DoctorCredential is the login record of a doctor. Keys follow the layout
// the web client persisted.
type DoctorCredential struct {
	Email    string   `json:"email,omitempty"    bson:"email,omitempty"`
	Username string   `json:"username,omitempty" bson:"username,omitempty"`
	Secret   string   `json:"password"           bson:"password"`
	DoctorID DoctorID `json:"doctorId"           bson:"doctor_id"`
}

// Matches reports whether identifier names this credential by email or by
// username. Empty fields never match.
func (c DoctorCredential) Matches(identifier string) bool {
	if identifier == "" {
		return false
	}
	return identifier == c.Email || identifier == c.Username
}

// Identifiers returns the non-empty identifiers of the credential.
func (c DoctorCredential) Identifiers() []string {
	ids := make([]string, 0, 2)
	if c.Email != "" {
		ids = append(ids, c.Email)
	}
	if c.Username != "" && c.Username != c.Email {
		ids = append(ids, c.Username)
	}
	return ids
}

// DoctorProfile is the directory entry of a doctor.
type DoctorProfile struct {
	ID        DoctorID `json:"id"                  bson:"doctor_id"`
	Name      string   `json:"name"                bson:"name"`
	Specialty string   `json:"specialty,omitempty" bson:"specialty,omitempty"`
	Location  string   `json:"location,omitempty"  bson:"location,omitempty"`
	Languages []string `json:"languages,omitempty" bson:"languages,omitempty"`
	Phone     string   `json:"phone,omitempty"     bson:"phone,omitempty"`
	Email     string   `json:"email,omitempty"     bson:"email,omitempty"`
	Website   string   `json:"website,omitempty"   bson:"website,omitempty"`
	Approved  bool     `json:"approved"            bson:"approved"`
}
