package practitioner

import "errors"

var (
	ErrMissingName          = errors.New("name is required")
	ErrMissingEmail         = errors.New("email is required")
	ErrMissingPassword      = errors.New("password is required")
	ErrMissingSpecialty     = errors.New("specialty is required")
	ErrMissingLicenseNumber = errors.New("license number is required")
	ErrMissingCredentialDoc = errors.New("credential document is required")
	ErrEmailAlreadyUsed     = errors.New("email already registered")
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotVerified          = errors.New("practitioner credentials not verified")
)
