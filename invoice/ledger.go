package invoice

import (
	"time"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/types"
)

// RecordPayment appends a payment to the ledger and applies it to the
// invoice in one step: the paid amount increases, and when it reaches the
// total exactly the invoice transitions to paid in the same call. A rejected
// payment has zero effect on the aggregate.
//
// Payments are accepted only while the invoice is finalized. A draft has no
// locked total to measure against and fails with ErrInvalidState; a paid
// invoice has a zero balance, so any positive payment against it fails the
// overpayment check. Callers must serialize RecordPayment per invoice so the
// overpayment check always observes the previous payment's effect.
func (inv *Invoice) RecordPayment(amount types.Money, reference string, now time.Time) (*Payment, error) {
	if inv.Status == StatusDraft {
		return nil, ErrInvalidState
	}
	if amount.Currency != inv.Currency {
		return nil, ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if inv.AmountPaid.Add(amount).GreaterThan(*inv.Total) {
		return nil, ErrOverpayment
	}

	// Timestamps are non-decreasing per invoice even if the wall clock
	// steps backwards; Sequence stays the authoritative order.
	if n := len(inv.Payments); n > 0 && now.Before(inv.Payments[n-1].RecordedAt) {
		now = inv.Payments[n-1].RecordedAt
	}

	p := Payment{
		ID:         id.NewPaymentID(),
		InvoiceID:  inv.ID,
		Sequence:   int64(len(inv.Payments)) + 1,
		Amount:     amount,
		Reference:  reference,
		RecordedAt: now,
	}
	inv.Payments = append(inv.Payments, p)
	inv.AmountPaid = inv.AmountPaid.Add(amount)

	if inv.AmountPaid.Equal(*inv.Total) {
		inv.Status = StatusPaid
		at := now
		inv.PaidAt = &at
	}
	inv.Touch()

	return &inv.Payments[len(inv.Payments)-1], nil
}

// Balance returns the remaining amount due (total minus amount paid).
// It is defined only once the invoice is finalized or paid.
func (inv *Invoice) Balance() (types.Money, error) {
	if inv.Total == nil {
		return types.Money{}, ErrInvalidState
	}
	return inv.Total.Subtract(inv.AmountPaid), nil
}
