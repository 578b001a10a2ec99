package study

// ServiceInterface defines the contract for study pool operations
type ServiceInterface interface {
	Import(req ImportRequest) (*MedicalStudy, error)
	Search(filter SearchFilter) []MedicalStudy
	GetByIDs(ids []string) []MedicalStudy
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
