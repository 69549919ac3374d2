package handler

import "github.com/medilink/directory/internal/core/domain"

type doctorCredentialRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username" validate:"required_without=Email,max=64"`
	Secret   string `json:"secret"   validate:"required,max=1024"`
}

type registerDoctorRequest struct {
	ID         string                  `json:"id"         validate:"required,max=64"`
	Name       string                  `json:"name"       validate:"required,max=200"`
	Specialty  string                  `json:"specialty"  validate:"max=200"`
	Location   string                  `json:"location"   validate:"max=200"`
	Languages  []string                `json:"languages"  validate:"dive,max=64"`
	Phone      string                  `json:"phone"      validate:"max=64"`
	Email      string                  `json:"email"      validate:"omitempty,email"`
	Website    string                  `json:"website"    validate:"omitempty,url"`
	Approved   bool                    `json:"approved"`
	Credential doctorCredentialRequest `json:"credential"`
}

type registerDoctorResponse struct {
	ID          string   `json:"id"`
	Identifiers []string `json:"identifiers"`
}

func (r registerDoctorRequest) toDomain() (domain.DoctorProfile, domain.DoctorCredential) {
	id := domain.DoctorID(r.ID)
	profile := domain.DoctorProfile{
		ID:        id,
		Name:      r.Name,
		Specialty: r.Specialty,
		Location:  r.Location,
		Languages: r.Languages,
		Phone:     r.Phone,
		Email:     r.Email,
		Website:   r.Website,
		Approved:  r.Approved,
	}
	cred := domain.DoctorCredential{
		Email:    r.Credential.Email,
		Username: r.Credential.Username,
		Secret:   r.Credential.Secret,
		DoctorID: id,
	}
	return profile, cred
}
