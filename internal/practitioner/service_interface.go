package practitioner

// ServiceInterface defines the contract for practitioner account operations
type ServiceInterface interface {
	Signup(req SignupRequest) (*Practitioner, error)
	Login(req LoginRequest) (string, *Practitioner, error)
	Logout() error
	Get(id string) (*Practitioner, error)
	List() []Practitioner
	Reverify(id, credentialDoc string) (*Practitioner, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
