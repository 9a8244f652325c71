package store

import (
	"context"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/invoice"
)

// Store is the unified storage interface backing the invoicing engine.
// Every backend persists the invoice aggregate as a unit: UpdateInvoice
// writes line items, payments, and status in one atomic operation.
type Store interface {
	// Invoice methods
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) error
	GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, number string) (*invoice.Invoice, error)
	ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error
	DeleteInvoice(ctx context.Context, invID id.InvoiceID) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
