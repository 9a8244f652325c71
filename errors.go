package invoicing

import (
	"errors"
	"fmt"

	"github.com/xraph/invoicing/invoice"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("invoicing: not found")
	ErrAlreadyExists = errors.New("invoicing: already exists")
	ErrInvalidInput  = errors.New("invoicing: invalid input")

	// Invoice errors
	ErrInvoiceNotFound = errors.New("invoicing: invoice not found")
	ErrDuplicateNumber = errors.New("invoicing: invoice number already exists")
	ErrInvalidCurrency = errors.New("invoicing: invalid currency code")

	// Conflict errors. Surfaced only by stores that detect concurrent
	// modification at the persistence layer; the engine's own locking
	// serializes writers per invoice, so callers normally never see it.
	ErrConflict = errors.New("invoicing: concurrent modification conflict")

	// Store errors
	ErrStoreNotReady     = errors.New("invoicing: store not ready")
	ErrStoreClosed       = errors.New("invoicing: store is closed")
	ErrTransactionFailed = errors.New("invoicing: transaction failed")
	ErrMigrationFailed   = errors.New("invoicing: migration failed")
)

// Aggregate errors, re-exported so callers can match every failure kind
// through this package. errors.Is works against either value.
var (
	ErrInvalidState     = invoice.ErrInvalidState
	ErrEmptyInvoice     = invoice.ErrEmptyInvoice
	ErrInvalidLineItem  = invoice.ErrInvalidLineItem
	ErrInvalidAmount    = invoice.ErrInvalidAmount
	ErrCurrencyMismatch = invoice.ErrCurrencyMismatch
	ErrOverpayment      = invoice.ErrOverpayment
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invoicing: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvoiceNotFound)
}

// IsValidation returns true if the error is an input validation failure.
// Retrying the same request unchanged can never succeed.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrInvalidLineItem) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrCurrencyMismatch)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
