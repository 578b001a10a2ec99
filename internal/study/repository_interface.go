package study

// RepositoryInterface defines the contract for custom study pool data access
type RepositoryInterface interface {
	ListCustom() []MedicalStudy
	Append(s MedicalStudy) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
