package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNoInstitution      = errors.New("user has no institution assigned")
)

// Institution errors
var (
	ErrInstitutionNotFound      = errors.New("institution not found")
	ErrInstitutionAlreadyExists = errors.New("institution with this registration number already exists")
)

// Learner errors
var (
	ErrLearnerNotFound   = errors.New("learner not found")
	ErrUPIAlreadyExists  = errors.New("learner with this UPI already exists")
	ErrLearnerNotActive  = errors.New("learner is not active")
	ErrLearnerIsDeceased = errors.New("learner already has a deceased record")
)

// Asset errors
var (
	ErrAssetNotFound = errors.New("infrastructure asset not found")
)

// Book errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// Receipt errors
var (
	ErrReceiptNotFound       = errors.New("capitation receipt not found")
	ErrReceiptAlreadyExists  = errors.New("receipt with this number already exists")
	ErrReceiptFileMissing    = errors.New("receipt document is required")
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
	ErrFileTooLarge          = errors.New("file exceeds the maximum allowed size")
)

// Deceased record errors
var (
	ErrDeceasedRecordNotFound = errors.New("deceased record not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping err with a message
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails attaches context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
