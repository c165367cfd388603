// Package errors provides custom error types for the fiscal-book client core.
// All domain and remote-call errors use AppError so the HTTP facade can map
// them to consistent responses without leaking internal details.
package errors

import "net/http"

// Field-level validation codes. These are the values stored in a FieldErrors
// map and shown inline next to the offending form field.
const (
	CodeRequired = "REQUIRED"
	CodeTooLong  = "TOO_LONG"
	CodeRange    = "RANGE"
	CodeFormat   = "FORMAT"
)

// FieldErrors maps a field name to a validation code. An empty map means the
// input is valid. Validation failures never reach the network.
type FieldErrors map[string]string

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level validation
// details, and optional internal error.
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Fields     FieldErrors `json:"fields,omitempty"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying field-level validation details.
func WithFields(sentinel *AppError, fields FieldErrors) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Remote collaborator errors. Every failed call to the finance backend is
// translated to ErrRemoteFailure exactly once, at the call site.
var (
	ErrRemoteFailure = &AppError{Code: "REMOTE_FAILURE", Message: "The finance service could not be reached", StatusCode: http.StatusBadGateway}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Fiscal book errors.
var (
	ErrFiscalBookNotFound  = &AppError{Code: "FISCAL_BOOK_NOT_FOUND", Message: "Fiscal book not found", StatusCode: http.StatusNotFound}
	ErrBookNotEditable     = &AppError{Code: "BOOK_NOT_EDITABLE", Message: "Closed and archived books cannot be edited", StatusCode: http.StatusConflict}
	ErrBookHasTransactions = &AppError{Code: "BOOK_HAS_TRANSACTIONS", Message: "A book with transactions cannot be deleted", StatusCode: http.StatusConflict}
	ErrInvalidTransition   = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "The requested status change is not allowed", StatusCode: http.StatusConflict}
)

// Bulk reassignment errors. The MISSING_* codes are validation failures that
// are rejected before any remote call is issued.
var (
	ErrMissingTarget  = &AppError{Code: "MISSING_TARGET", Message: "A target fiscal book is required", StatusCode: http.StatusBadRequest}
	ErrMissingSource  = &AppError{Code: "MISSING_SOURCE", Message: "A source fiscal book is required", StatusCode: http.StatusBadRequest}
	ErrMissingBoth    = &AppError{Code: "MISSING_BOTH", Message: "Both source and target fiscal books are required", StatusCode: http.StatusBadRequest}
	ErrOwnedElsewhere = &AppError{Code: "OWNED_ELSEWHERE", Message: "Transaction already belongs to another fiscal book", StatusCode: http.StatusConflict}
)
