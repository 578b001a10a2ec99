package practitioner

// RepositoryInterface defines the contract for practitioner account persistence
type RepositoryInterface interface {
	List() []Practitioner
	GetByID(id string) *Practitioner
	GetByEmail(email string) *Practitioner
	Append(p Practitioner) error
	Update(p Practitioner) error
	OpenSession(practitionerID string) error
	CloseSession() error
	CurrentSessionID() string
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
