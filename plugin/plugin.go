// Package plugin provides an extensible plugin system for the invoicing
// engine. Plugins can hook into lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized. The engine is passed as
// interface{} to avoid an import cycle with the root package.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called when a draft invoice is created.
type OnInvoiceCreated interface {
	Plugin
	OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error
}

// OnLineItemAdded is called when a line item is added to a draft invoice.
type OnLineItemAdded interface {
	Plugin
	OnLineItemAdded(ctx context.Context, inv *invoice.Invoice, item *invoice.LineItem) error
}

// OnInvoiceFinalized is called when an invoice is finalized.
type OnInvoiceFinalized interface {
	Plugin
	OnInvoiceFinalized(ctx context.Context, inv *invoice.Invoice) error
}

// OnInvoicePaid is called when an invoice reaches full payment.
type OnInvoicePaid interface {
	Plugin
	OnInvoicePaid(ctx context.Context, inv *invoice.Invoice) error
}

// ──────────────────────────────────────────────────
// Payment ledger hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded is called when a payment is accepted onto the ledger.
type OnPaymentRecorded interface {
	Plugin
	OnPaymentRecorded(ctx context.Context, inv *invoice.Invoice, payment *invoice.Payment) error
}

// OnPaymentRejected is called when a payment submission is refused, for
// example on overpayment or a payment against a draft invoice.
type OnPaymentRejected interface {
	Plugin
	OnPaymentRejected(ctx context.Context, inv *invoice.Invoice, amount types.Money, reason error) error
}
