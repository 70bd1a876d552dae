package domain

// Custom errors
var (
	ErrIncidentNotFound = NewDomainError("incident not found")
	ErrUserNotFound     = NewDomainError("user not found")
	ErrNoActiveSession  = NewDomainError("no active session")
	ErrInvalidStatus    = NewDomainError("invalid incident status")
	ErrInvalidPriority  = NewDomainError("invalid incident priority")
	ErrInvalidRole      = NewDomainError("invalid user role")
	ErrUserDisabled     = NewDomainError("user is disabled")
	ErrEmptyTitle       = NewDomainError("incident title is required")
	ErrEmptyComment     = NewDomainError("comment content is required")
)

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}
