package document

// ServiceInterface defines the contract for reference library operations
type ServiceInterface interface {
	Upload(req UploadRequest) (*HealthDocument, error)
	List() []HealthDocument
	Get(id string) (*HealthDocument, error)
	SetSummary(id, summary string) (*HealthDocument, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
