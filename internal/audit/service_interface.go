package audit

// ServiceInterface defines the contract for audit trail operations
type ServiceInterface interface {
	Record(actor string, req RecordRequest) (*Entry, error)
	Trail() []Entry
	ExportJSON() ([]byte, error)
	Trim(keep int) ([]Entry, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
