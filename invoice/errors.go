package invoice

import "errors"

// Sentinel errors for aggregate operations. The root invoicing package
// re-exports these so callers can match every failure kind in one place.
var (
	// ErrInvalidState is returned when an operation is attempted against an
	// invoice whose status forbids it (adding items after finalization,
	// paying a draft or already-paid invoice, ...).
	ErrInvalidState = errors.New("invoicing: invalid invoice state for operation")

	// ErrEmptyInvoice is returned by Finalize when the invoice has no line
	// items. An invoice must carry at least one item to lock a total.
	ErrEmptyInvoice = errors.New("invoicing: cannot finalize invoice without line items")

	// ErrInvalidLineItem is returned for an empty description, a
	// non-positive quantity, or a negative unit price.
	ErrInvalidLineItem = errors.New("invoicing: invalid line item")

	// ErrInvalidAmount is returned for a non-positive payment amount.
	ErrInvalidAmount = errors.New("invoicing: payment amount must be positive")

	// ErrCurrencyMismatch is returned when an operation mixes money values
	// of different currencies.
	ErrCurrencyMismatch = errors.New("invoicing: currency mismatch")

	// ErrOverpayment is returned when a payment would push the paid amount
	// above the locked total.
	ErrOverpayment = errors.New("invoicing: payment would exceed invoice total")
)
