package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Business error codes carried in the response envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeDuplicate    = "DUPLICATE_ENTRY"
	CodeInsufficient = "INSUFFICIENT_HOLDING"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the error type every service returns for expected failures.
// Status is the HTTP status the handler layer maps it to 1:1.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Status: 400, Code: CodeValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return &AppError{Status: 404, Code: CodeNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{Status: 401, Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return &AppError{Status: 403, Code: CodeForbidden, Message: message}
}

func NewConflictError(message string) *AppError {
	if message == "" {
		message = "Resource already exists"
	}
	return &AppError{Status: 409, Code: CodeDuplicate, Message: message}
}

// NewInsufficientHoldingError is a specialization of validation failure for a
// SELL of more units than held. It keeps status 400 but a dedicated code so
// callers and tests can tell it apart.
func NewInsufficientHoldingError(available, requested decimal.Decimal) *AppError {
	return &AppError{
		Status: 400,
		Code:   CodeInsufficient,
		Message: fmt.Sprintf("Cannot SELL: Insufficient units. Available: %s, Requested: %s",
			available.String(), requested.String()),
	}
}
