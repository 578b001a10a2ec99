package audit

// RepositoryInterface defines the contract for audit trail persistence
type RepositoryInterface interface {
	List() []Entry
	Prepend(entry Entry) error
	Replace(entries []Entry) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
