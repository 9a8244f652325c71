// Package invoice implements the invoice aggregate: line items, frozen
// totals, the draft → finalized → paid state machine, and the ledger of
// payments recorded against the locked total.
//
// All operations mutate the aggregate in memory only. Callers (the engine)
// are responsible for serializing access per invoice and for persisting the
// result atomically; a failed operation leaves the aggregate untouched.
package invoice

import (
	"time"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/types"
)

// Status is the lifecycle state of an invoice. Transitions are monotonic:
// draft → finalized → paid, with no skips and no reversals.
type Status string

const (
	// StatusDraft accepts line items; totals are not computed yet.
	StatusDraft Status = "draft"
	// StatusFinalized has a locked total and accepts payments.
	StatusFinalized Status = "finalized"
	// StatusPaid is terminal: amount paid equals the total exactly.
	StatusPaid Status = "paid"
)

// Invoice is the aggregate root. It owns its line items and the payment
// ledger; both are persisted and mutated as a single unit.
type Invoice struct {
	types.Entity
	ID           id.InvoiceID `json:"id"`
	Number       string       `json:"number"`
	CustomerName string       `json:"customer_name"`
	Status       Status       `json:"status"`
	Currency     string       `json:"currency"`
	LineItems    []LineItem   `json:"line_items"`

	// Total is nil until the invoice is finalized, then frozen forever.
	Total      *types.Money `json:"total,omitempty"`
	AmountPaid types.Money  `json:"amount_paid"`
	Payments   []Payment    `json:"payments"`

	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// LineItem belongs to exactly one invoice. Immutable once the invoice
// leaves draft.
type LineItem struct {
	ID          id.LineItemID `json:"id"`
	InvoiceID   id.InvoiceID  `json:"invoice_id"`
	Description string        `json:"description"`
	Quantity    int64         `json:"quantity"`
	UnitPrice   types.Money   `json:"unit_price"`
	Amount      types.Money   `json:"amount"`
}

// Payment is one entry in the invoice's payment ledger. Payments are
// immutable once recorded and are created only by RecordPayment; Sequence is
// the authoritative ordering key for replay and audit.
type Payment struct {
	ID         id.PaymentID `json:"id"`
	InvoiceID  id.InvoiceID `json:"invoice_id"`
	Sequence   int64        `json:"sequence"`
	Amount     types.Money  `json:"amount"`
	Reference  string       `json:"reference,omitempty"`
	RecordedAt time.Time    `json:"recorded_at"`
}

// New creates a draft invoice in the given currency with no line items,
// no total, and a zero paid amount.
func New(number, customerName, currency string) *Invoice {
	cur := normalizeCurrency(currency)
	return &Invoice{
		Entity:       types.NewEntity(),
		ID:           id.NewInvoiceID(),
		Number:       number,
		CustomerName: customerName,
		Status:       StatusDraft,
		Currency:     cur,
		LineItems:    []LineItem{},
		AmountPaid:   types.Zero(cur),
		Payments:     []Payment{},
	}
}

// Clone returns a deep copy of the invoice. Stores hand out clones so that
// an engine mutation that fails before persisting never leaks partial state
// into a shared aggregate.
func (inv *Invoice) Clone() *Invoice {
	out := *inv

	out.LineItems = make([]LineItem, len(inv.LineItems))
	copy(out.LineItems, inv.LineItems)

	out.Payments = make([]Payment, len(inv.Payments))
	copy(out.Payments, inv.Payments)

	if inv.Total != nil {
		t := *inv.Total
		out.Total = &t
	}
	if inv.FinalizedAt != nil {
		t := *inv.FinalizedAt
		out.FinalizedAt = &t
	}
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		out.PaidAt = &t
	}

	return &out
}

// IsDraft reports whether the invoice still accepts line items.
func (inv *Invoice) IsDraft() bool { return inv.Status == StatusDraft }

// IsFinalized reports whether the total is locked and payments are accepted.
func (inv *Invoice) IsFinalized() bool { return inv.Status == StatusFinalized }

// IsPaid reports whether the invoice is fully paid.
func (inv *Invoice) IsPaid() bool { return inv.Status == StatusPaid }
