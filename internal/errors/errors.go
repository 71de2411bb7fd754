// Package errors provides custom error types for the Fintrack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Fields carries per-field validation messages when the error originates
// from schema validation.
type AppError struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"-"`
	Internal   error               `json:"-"`
	Fields     map[string][]string `json:"-"`
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

// WithFields creates a new AppError carrying field-level validation messages.
func WithFields(sentinel *AppError, fields map[string][]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Fields:     fields,
	}
}

// Authentication & identity errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrAuthFailed   = &AppError{Code: "AUTH_FAILED", Message: "Error authenticating", StatusCode: http.StatusUnauthorized}
	ErrInvalidCode  = &AppError{Code: "INVALID_CODE", Message: "Invalid or expired sign-in code", StatusCode: http.StatusUnauthorized}
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Validation errors. Once one of these is returned no store call is made;
// field-level messages are attached via WithFields.
var ErrInvalidData = &AppError{Code: "INVALID_DATA", Message: "Invalid data", StatusCode: http.StatusBadRequest}

// Remote store errors. The original cause is wrapped for logging but never
// surfaced to the client.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrCreateFailed        = &AppError{Code: "CREATE_FAILED", Message: "Failed to create transaction", StatusCode: http.StatusBadGateway}
	ErrUpdateFailed        = &AppError{Code: "UPDATE_FAILED", Message: "Failed to update transaction", StatusCode: http.StatusBadGateway}
	ErrDeleteFailed        = &AppError{Code: "DELETE_FAILED", Message: "Failed to delete transaction", StatusCode: http.StatusBadGateway}
	ErrFetchFailed         = &AppError{Code: "FETCH_FAILED", Message: "Cannot fetch transactions", StatusCode: http.StatusBadGateway}
)

// Settings and avatar errors.
var (
	ErrSettingsUpdateFailed = &AppError{Code: "SETTINGS_UPDATE_FAILED", Message: "Failed updating settings", StatusCode: http.StatusBadGateway}
	ErrAvatarUploadFailed   = &AppError{Code: "AVATAR_UPLOAD_FAILED", Message: "Error uploading avatar", StatusCode: http.StatusBadGateway}
)
