package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Ledger intent validation failures. A rejected intent must leave balances
// and inventory untouched.
var (
	// ErrInvalidAmount indicates a transaction quantity that is zero or negative.
	ErrInvalidAmount = errors.New("transaction amount must be positive")

	// ErrMissingPurity indicates a gold transaction with no resolvable purity,
	// neither on the intent nor on a linked inventory item.
	ErrMissingPurity = errors.New("gold transaction requires a purity")

	// ErrInvalidDirection indicates a direction the requested operation does
	// not accept. The processor accepts SALE and COLLECTION only; vault
	// movements accept VAULT_IN and VAULT_OUT only.
	ErrInvalidDirection = errors.New("direction not valid for this operation")

	// ErrInsufficientStock indicates a sale that would drive an inventory item's
	// physical stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock for linked inventory item")
)

// ErrDivisionByZero indicates an attempt to divide a monetary value by zero.
var ErrDivisionByZero = errors.New("division by zero")

// AppError wraps an infrastructure failure with an HTTP-ish status code and a
// safe message. Used by the repository layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
