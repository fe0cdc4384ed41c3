// Package errors provides custom error types for the EMITrack API.
// All service- and engine-layer errors use AppError so callers always get a
// machine-readable error code alongside a human-readable message, and the
// HTTP layer never leaks internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Loan errors.
var (
	ErrLoanNotFound     = &AppError{Code: "LOAN_NOT_FOUND", Message: "Loan not found", StatusCode: http.StatusNotFound}
	ErrInvalidLoanTerms = &AppError{Code: "INVALID_LOAN_TERMS", Message: "Principal and tenure must be positive and the interest rate between 0 and 100", StatusCode: http.StatusBadRequest}
)

// Schedule errors.
var (
	ErrInstallmentNotFound  = &AppError{Code: "INSTALLMENT_NOT_FOUND", Message: "Installment not found", StatusCode: http.StatusNotFound}
	ErrInvalidSequenceRange = &AppError{Code: "INVALID_SEQUENCE_RANGE", Message: "End sequence number must not precede the start sequence number", StatusCode: http.StatusBadRequest}
)

// Modification errors.
var (
	ErrInvalidAmount      = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidStepUp      = &AppError{Code: "INVALID_STEP_UP", Message: "Exactly one of amount or percentage must be provided and positive", StatusCode: http.StatusBadRequest}
	ErrRateOutOfRange     = &AppError{Code: "RATE_OUT_OF_RANGE", Message: "Interest rate must be between 0 and 100", StatusCode: http.StatusBadRequest}
	ErrTenureNotReducible = &AppError{Code: "TENURE_NOT_REDUCIBLE", Message: "EMI does not cover the periodic interest on the remaining balance", StatusCode: http.StatusUnprocessableEntity}
)
