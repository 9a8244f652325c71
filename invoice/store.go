package invoice

import (
	"context"

	"github.com/xraph/invoicing/id"
)

// Store is the per-entity persistence contract for invoices. Line items and
// payments travel with the invoice: Update persists the whole aggregate in
// one atomic write.
type Store interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, invID id.InvoiceID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	List(ctx context.Context, opts ListOpts) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, invID id.InvoiceID) error
}

// ListOpts filters and pages invoice listings.
type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
