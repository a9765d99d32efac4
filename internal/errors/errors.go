// Package errors provides custom error types for the finboard API.
// All service-layer errors should use AppError so responses carry a stable
// code and a human-readable message, and never leak internal details.
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

// Is matches AppErrors by code, so a message-customised copy still matches
// its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

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

// Authentication errors.
var (
	ErrUnauthorized  = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidAPIKey = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Transaction errors.
var (
	ErrTransactionNotFound   = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrNoFieldsToUpdate      = &AppError{Code: "NO_FIELDS_TO_UPDATE", Message: "Provide at least one of description, category or subcategory", StatusCode: http.StatusBadRequest}
	ErrInvalidClassification = &AppError{Code: "INVALID_CLASSIFICATION", Message: "Subcategory does not belong to category", StatusCode: http.StatusBadRequest}
)

// Rule errors.
var (
	ErrInvalidPattern = &AppError{Code: "INVALID_PATTERN", Message: "Pattern must not be empty", StatusCode: http.StatusBadRequest}
)

// Batch errors.
var (
	ErrBatchNotFound  = &AppError{Code: "BATCH_NOT_FOUND", Message: "Import batch not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBatch = &AppError{Code: "DUPLICATE_BATCH", Message: "This file has already been imported", StatusCode: http.StatusConflict}
	ErrInvalidFile    = &AppError{Code: "INVALID_FILE", Message: "The uploaded file could not be parsed", StatusCode: http.StatusBadRequest}
)
