package patient

// RepositoryInterface defines the contract for scoped patient data access
type RepositoryInterface interface {
	ListOwned(practitionerID string) []Patient
	SaveOwned(practitionerID string, patients []Patient) error
	UnscopedTable() []Patient
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
