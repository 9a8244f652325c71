package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/types"
)

// invoiceModel is the document form of the invoice aggregate. Line items
// and payments are embedded so a single replace commits the whole aggregate.
type invoiceModel struct {
	grove.BaseModel `grove:"table:invoicing_invoices"`

	ID               string          `grove:"id,pk"              bson:"_id"`
	Number           string          `grove:"number"             bson:"number"`
	CustomerName     string          `grove:"customer_name"      bson:"customer_name"`
	Status           string          `grove:"status"             bson:"status"`
	Currency         string          `grove:"currency"           bson:"currency"`
	TotalAmountCents int64           `grove:"total_amount_cents" bson:"total_amount_cents"`
	AmountPaidCents  int64           `grove:"amount_paid_cents"  bson:"amount_paid_cents"`
	LineItems        []lineItemModel `grove:"line_items"         bson:"line_items"`
	Payments         []paymentModel  `grove:"payments"           bson:"payments"`
	FinalizedAt      *time.Time      `grove:"finalized_at"       bson:"finalized_at,omitempty"`
	PaidAt           *time.Time      `grove:"paid_at"            bson:"paid_at,omitempty"`
	CreatedAt        time.Time       `grove:"created_at"         bson:"created_at"`
	UpdatedAt        time.Time       `grove:"updated_at"         bson:"updated_at"`
}

type lineItemModel struct {
	ID                 string `bson:"id"`
	InvoiceID          string `bson:"invoice_id"`
	Description        string `bson:"description"`
	Quantity           int64  `bson:"quantity"`
	UnitPriceCents     int64  `bson:"unit_price_cents"`
	UnitPriceCurrency  string `bson:"unit_price_currency"`
	AmountCents        int64  `bson:"amount_cents"`
	AmountCurrency     string `bson:"amount_currency"`
}

type paymentModel struct {
	ID             string    `bson:"id"`
	InvoiceID      string    `bson:"invoice_id"`
	Sequence       int64     `bson:"sequence"`
	AmountCents    int64     `bson:"amount_cents"`
	AmountCurrency string    `bson:"amount_currency"`
	Reference      string    `bson:"reference,omitempty"`
	RecordedAt     time.Time `bson:"recorded_at"`
}

func toInvoiceModel(inv *invoice.Invoice) *invoiceModel {
	lineItems := make([]lineItemModel, len(inv.LineItems))
	for i, item := range inv.LineItems {
		lineItems[i] = lineItemModel{
			ID:                item.ID.String(),
			InvoiceID:         item.InvoiceID.String(),
			Description:       item.Description,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPrice.Amount,
			UnitPriceCurrency: item.UnitPrice.Currency,
			AmountCents:       item.Amount.Amount,
			AmountCurrency:    item.Amount.Currency,
		}
	}

	payments := make([]paymentModel, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = paymentModel{
			ID:             p.ID.String(),
			InvoiceID:      p.InvoiceID.String(),
			Sequence:       p.Sequence,
			AmountCents:    p.Amount.Amount,
			AmountCurrency: p.Amount.Currency,
			Reference:      p.Reference,
			RecordedAt:     p.RecordedAt,
		}
	}

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

	lineItems := make([]invoice.LineItem, len(m.LineItems))
	for i, item := range m.LineItems {
		itemID, err := id.ParseLineItemID(item.ID)
		if err != nil {
			return nil, err
		}
		itemInvID, err := id.ParseInvoiceID(item.InvoiceID)
		if err != nil {
			return nil, err
		}
		lineItems[i] = invoice.LineItem{
			ID:          itemID,
			InvoiceID:   itemInvID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   types.Money{Amount: item.UnitPriceCents, Currency: item.UnitPriceCurrency},
			Amount:      types.Money{Amount: item.AmountCents, Currency: item.AmountCurrency},
		}
	}

	payments := make([]invoice.Payment, len(m.Payments))
	for i, p := range m.Payments {
		payID, err := id.ParsePaymentID(p.ID)
		if err != nil {
			return nil, err
		}
		payInvID, err := id.ParseInvoiceID(p.InvoiceID)
		if err != nil {
			return nil, err
		}
		payments[i] = invoice.Payment{
			ID:         payID,
			InvoiceID:  payInvID,
			Sequence:   p.Sequence,
			Amount:     types.Money{Amount: p.AmountCents, Currency: p.AmountCurrency},
			Reference:  p.Reference,
			RecordedAt: p.RecordedAt,
		}
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
