package document

// RepositoryInterface defines the contract for reference library data access
type RepositoryInterface interface {
	List() []HealthDocument
	Get(id string) (*HealthDocument, error)
	Save(docs []HealthDocument) error
	Append(doc HealthDocument) error
	Update(doc HealthDocument) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
