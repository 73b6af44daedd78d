package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in API responses and logs
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeForbidden         = "FORBIDDEN"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError is the application error type carried across service boundaries
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a 400 error for malformed or invalid input
func NewBadRequestError(message string, err error) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, StatusCode: http.StatusBadRequest, Err: err}
}

// NewNotFoundError creates a 404 error for a missing resource
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, StatusCode: http.StatusNotFound}
}

// NewConflictError creates a 409 error for a state-transition precondition violation
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, StatusCode: http.StatusConflict}
}

// NewForbiddenError creates a 403 error for a failed ownership or role check
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, StatusCode: http.StatusForbidden}
}

// NewInsufficientFundsError creates a 400 error for a withdrawal exceeding the balance
func NewInsufficientFundsError(message string) *AppError {
	return &AppError{Code: CodeInsufficientFunds, Message: message, StatusCode: http.StatusBadRequest}
}

// NewInternalError creates a 500 error wrapping an underlying cause
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, StatusCode: http.StatusInternalServerError, Err: err}
}

// NewInternalServerError creates a 500 error without a cause
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, StatusCode: http.StatusInternalServerError}
}

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
