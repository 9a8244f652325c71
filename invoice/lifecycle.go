package invoice

import (
	"strings"
	"time"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/types"
)

// normalizeCurrency lowercases a currency code the way Money constructors do.
func normalizeCurrency(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// AddLineItem appends a line item to a draft invoice. The total is not
// recomputed incrementally; it is computed exactly once, at Finalize.
func (inv *Invoice) AddLineItem(description string, quantity int64, unitPrice types.Money) (*LineItem, error) {
	if inv.Status != StatusDraft {
		return nil, ErrInvalidState
	}
	if strings.TrimSpace(description) == "" || quantity <= 0 || unitPrice.IsNegative() {
		return nil, ErrInvalidLineItem
	}
	if unitPrice.Currency != inv.Currency {
		return nil, ErrCurrencyMismatch
	}

	item := LineItem{
		ID:          id.NewLineItemID(),
		InvoiceID:   inv.ID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Multiply(quantity),
	}
	inv.LineItems = append(inv.LineItems, item)
	inv.Touch()

	return &inv.LineItems[len(inv.LineItems)-1], nil
}

// Finalize locks the invoice: the total is computed once from the line
// items, stored, and never recomputed; the line-item sequence becomes an
// immutable snapshot. This is the irreversible transition out of draft:
// after it, AddLineItem permanently fails with ErrInvalidState.
//
// An invoice with zero line items cannot be finalized.
func (inv *Invoice) Finalize(now time.Time) error {
	if inv.Status != StatusDraft {
		return ErrInvalidState
	}
	if len(inv.LineItems) == 0 {
		return ErrEmptyInvoice
	}

	total := types.Zero(inv.Currency)
	for _, item := range inv.LineItems {
		total = total.Add(item.Amount)
	}

	// Freeze the line items into a fresh snapshot so no alias of the old
	// slice can grow it after locking.
	frozen := make([]LineItem, len(inv.LineItems))
	copy(frozen, inv.LineItems)
	inv.LineItems = frozen

	inv.Total = &total
	inv.Status = StatusFinalized
	at := now
	inv.FinalizedAt = &at
	inv.Touch()

	return nil
}
