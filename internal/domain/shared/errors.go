package shared

// DomainError is an error with a stable code the HTTP layer can map
// onto a response without inspecting the message.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across the domain packages. Services wrap
// these with fmt.Errorf("%w: ...") so callers match with errors.Is.
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	// ErrProtected guards deletion of records that still own financial history.
	ErrProtected = NewDomainError("PROTECTED", "Resource has dependent records and cannot be deleted")
)
