package practitioner

import "time"

// Practitioner is a registered clinician account. PasswordHash must
// survive storage round trips, so it carries a json tag; the service
// clears it before a record leaves the API.
type Practitioner struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"license_number"`
	Verified      bool      `json:"verified"`
	CredentialDoc string    `json:"credential_doc,omitempty"`
	PasswordHash  string    `json:"password_hash,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Sanitized returns a copy safe to return to API callers.
func (p Practitioner) Sanitized() *Practitioner {
	p.PasswordHash = ""
	return &p
}

// SignupRequest represents the request to register a practitioner account
type SignupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	CredentialDoc string `json:"credential_doc,omitempty"`
}

// Validate validates the signup request
func (r *SignupRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	if r.Email == "" {
		return ErrMissingEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	if r.Specialty == "" {
		return ErrMissingSpecialty
	}
	if r.LicenseNumber == "" {
		return ErrMissingLicenseNumber
	}
	return nil
}

// LoginRequest represents the request to open a practitioner session
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and the account profile.
type LoginResponse struct {
	Success      bool          `json:"success"`
	Token        string        `json:"token"`
	Practitioner *Practitioner `json:"practitioner"`
}

// PractitionerSuccessResponse wraps a single account response.
type PractitionerSuccessResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Practitioner *Practitioner `json:"practitioner,omitempty"`
}
