package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodePrecondition  = "PRECONDITION_FAILED"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidRFPStatus     = NewDomainError(ErrCodeValidation, "invalid rfp status")
	ErrInvalidDueDate       = NewDomainError(ErrCodeValidation, "invalid due date, expected YYYY-MM-DD")
	ErrInvalidBudgetRange   = NewDomainError(ErrCodeValidation, "invalid budget range format")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrUnsupportedImport    = NewDomainError(ErrCodeValidation, "import method not supported")
)

// Not found errors
var (
	ErrRFPNotFound        = NewDomainError(ErrCodeNotFound, "rfp not found")
	ErrArticleNotFound    = NewDomainError(ErrCodeNotFound, "knowledge article not found")
	ErrTeamMemberNotFound = NewDomainError(ErrCodeNotFound, "team member not found")
	ErrEmailNotFound      = NewDomainError(ErrCodeNotFound, "email not found")
	ErrAttachmentNotFound = NewDomainError(ErrCodeNotFound, "attachment not found")
)

// Precondition errors
var (
	ErrProposalRequired = NewDomainError(ErrCodePrecondition, "quality check requires a generated proposal")
)

// Capability errors
var (
	ErrStorageNotConfigured = NewDomainError(ErrCodeUnavailable, "attachment storage not configured")
)
