package audithook

// Action constants for audit events.
const (
	// Invoice actions
	ActionInvoiceCreated   = "invoice.created"
	ActionLineItemAdded    = "invoice.line_item_added"
	ActionInvoiceFinalized = "invoice.finalized"
	ActionInvoicePaid      = "invoice.paid"

	// Payment actions
	ActionPaymentRecorded = "payment.recorded"
	ActionPaymentRejected = "payment.rejected"
)

// Resource constants for audit events.
const (
	ResourceInvoice = "invoice"
	ResourcePayment = "payment"
)

// Category constants for audit events.
const (
	CategoryBilling = "billing"
	CategoryPayment = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
