package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/types"
)

// invoiceModel is the row form of the invoice aggregate. Line items and
// payments are serialized into the row so an UPDATE commits the whole
// aggregate in one statement.
type invoiceModel struct {
	grove.BaseModel `grove:"table:invoicing_invoices"`

	ID               string          `grove:"id,pk"`
	Number           string          `grove:"number"`
	CustomerName     string          `grove:"customer_name"`
	Status           string          `grove:"status"`
	Currency         string          `grove:"currency"`
	TotalAmountCents int64           `grove:"total_amount_cents"`
	AmountPaidCents  int64           `grove:"amount_paid_cents"`
	LineItems        json.RawMessage `grove:"line_items,type:jsonb"`
	Payments         json.RawMessage `grove:"payments,type:jsonb"`
	FinalizedAt      *time.Time      `grove:"finalized_at"`
	PaidAt           *time.Time      `grove:"paid_at"`
	CreatedAt        time.Time       `grove:"created_at"`
	UpdatedAt        time.Time       `grove:"updated_at"`
}

func toInvoiceModel(inv *invoice.Invoice) *invoiceModel {
	lineItems, _ := json.Marshal(inv.LineItems) //nolint:errcheck // best-effort
	payments, _ := json.Marshal(inv.Payments)   //nolint:errcheck // best-effort

	m := &invoiceModel{
		ID:              inv.ID.String(),
		Number:          inv.Number,
		CustomerName:    inv.CustomerName,
		Status:          string(inv.Status),
		Currency:        inv.Currency,
		AmountPaidCents: inv.AmountPaid.Amount,
		LineItems:       lineItems,
		Payments:        payments,
		FinalizedAt:     inv.FinalizedAt,
		PaidAt:          inv.PaidAt,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if inv.Total != nil {
		m.TotalAmountCents = inv.Total.Amount
	}
	return m
}

func fromInvoiceModel(m *invoiceModel) (*invoice.Invoice, error) {
	invID, err := id.ParseInvoiceID(m.ID)
	if err != nil {
		return nil, err
	}

	var lineItems []invoice.LineItem
	if len(m.LineItems) > 0 {
		_ = json.Unmarshal(m.LineItems, &lineItems) //nolint:errcheck // best-effort
	}
	var payments []invoice.Payment
	if len(m.Payments) > 0 {
		_ = json.Unmarshal(m.Payments, &payments) //nolint:errcheck // best-effort
	}

	inv := &invoice.Invoice{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:           invID,
		Number:       m.Number,
		CustomerName: m.CustomerName,
		Status:       invoice.Status(m.Status),
		Currency:     m.Currency,
		LineItems:    lineItems,
		AmountPaid:   types.Money{Amount: m.AmountPaidCents, Currency: m.Currency},
		Payments:     payments,
		FinalizedAt:  m.FinalizedAt,
		PaidAt:       m.PaidAt,
	}

	// Total exists only once the invoice is finalized.
	if m.FinalizedAt != nil {
		inv.Total = &types.Money{Amount: m.TotalAmountCents, Currency: m.Currency}
	}

	return inv, nil
}
