package invoice_test

import (
	"errors"
	"testing"
	"time"

	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/types"
)

var testClock = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func draftInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	return invoice.New("INV-001", "Acme Corp", "usd")
}

func finalizedInvoice(t *testing.T, items ...types.Money) *invoice.Invoice {
	t.Helper()
	inv := draftInvoice(t)
	for _, price := range items {
		if _, err := inv.AddLineItem("item", 1, price); err != nil {
			t.Fatalf("AddLineItem: %v", err)
		}
	}
	if err := inv.Finalize(testClock); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return inv
}

func TestNew(t *testing.T) {
	inv := invoice.New("INV-001", "Acme Corp", "USD")

	if inv.ID.IsNil() {
		t.Error("expected non-nil invoice ID")
	}
	if inv.Status != invoice.StatusDraft {
		t.Errorf("Status: got %q, want %q", inv.Status, invoice.StatusDraft)
	}
	if inv.Currency != "usd" {
		t.Errorf("Currency: got %q, want %q (lowercased)", inv.Currency, "usd")
	}
	if inv.Total != nil {
		t.Errorf("Total: got %v, want nil for a draft", inv.Total)
	}
	if !inv.AmountPaid.IsZero() {
		t.Errorf("AmountPaid: got %v, want zero", inv.AmountPaid)
	}
	if len(inv.LineItems) != 0 || len(inv.Payments) != 0 {
		t.Errorf("expected empty line items and payments, got %d / %d",
			len(inv.LineItems), len(inv.Payments))
	}
}

func TestAddLineItem(t *testing.T) {
	inv := draftInvoice(t)

	item, err := inv.AddLineItem("Widget", 2, types.USD(1000))
	if err != nil {
		t.Fatalf("AddLineItem: %v", err)
	}
	if item.ID.IsNil() {
		t.Error("expected non-nil line item ID")
	}
	if item.InvoiceID != inv.ID {
		t.Errorf("InvoiceID: got %v, want %v", item.InvoiceID, inv.ID)
	}
	if !item.Amount.Equal(types.USD(2000)) {
		t.Errorf("Amount: got %v, want %v", item.Amount, types.USD(2000))
	}
	if len(inv.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(inv.LineItems))
	}
	if inv.Total != nil {
		t.Error("Total must stay nil until Finalize")
	}
}

func TestAddLineItemValidation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		quantity    int64
		unitPrice   types.Money
		wantErr     error
	}{
		{"Empty description", "", 1, types.USD(100), invoice.ErrInvalidLineItem},
		{"Blank description", "   ", 1, types.USD(100), invoice.ErrInvalidLineItem},
		{"Zero quantity", "Widget", 0, types.USD(100), invoice.ErrInvalidLineItem},
		{"Negative quantity", "Widget", -1, types.USD(100), invoice.ErrInvalidLineItem},
		{"Negative unit price", "Widget", 1, types.USD(-100), invoice.ErrInvalidLineItem},
		{"Currency mismatch", "Widget", 1, types.EUR(100), invoice.ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := draftInvoice(t)
			_, err := inv.AddLineItem(tt.description, tt.quantity, tt.unitPrice)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
			if len(inv.LineItems) != 0 {
				t.Error("rejected line item must not be appended")
			}
		})
	}
}

func TestAddLineItemZeroPriceAllowed(t *testing.T) {
	inv := draftInvoice(t)
	if _, err := inv.AddLineItem("Free sample", 3, types.USD(0)); err != nil {
		t.Fatalf("zero unit price should be accepted: %v", err)
	}
}

func TestAddLineItemAfterFinalize(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(1000))

	before := len(inv.LineItems)
	_, err := inv.AddLineItem("Late item", 1, types.USD(500))
	if !errors.Is(err, invoice.ErrInvalidState) {
		t.Errorf("got error %v, want ErrInvalidState", err)
	}
	if len(inv.LineItems) != before {
		t.Error("line items changed after rejected add")
	}
	if !inv.Total.Equal(types.USD(1000)) {
		t.Errorf("Total changed: got %v, want %v", *inv.Total, types.USD(1000))
	}
}

func TestFinalize(t *testing.T) {
	inv := draftInvoice(t)
	if _, err := inv.AddLineItem("Widget", 2, types.USD(1000)); err != nil {
		t.Fatal(err)
	}
	if _, err := inv.AddLineItem("Service", 1, types.USD(3500)); err != nil {
		t.Fatal(err)
	}

	if err := inv.Finalize(testClock); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if inv.Status != invoice.StatusFinalized {
		t.Errorf("Status: got %q, want %q", inv.Status, invoice.StatusFinalized)
	}
	if inv.Total == nil {
		t.Fatal("Total is nil after Finalize")
	}
	if !inv.Total.Equal(types.USD(5500)) {
		t.Errorf("Total: got %v, want %v", *inv.Total, types.USD(5500))
	}
	if inv.FinalizedAt == nil || !inv.FinalizedAt.Equal(testClock) {
		t.Errorf("FinalizedAt: got %v, want %v", inv.FinalizedAt, testClock)
	}

	balance, err := inv.Balance()
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !balance.Equal(types.USD(5500)) {
		t.Errorf("Balance: got %v, want %v", balance, types.USD(5500))
	}
}

func TestFinalizeTotalOrderIndependent(t *testing.T) {
	prices := []types.Money{types.USD(1999), types.USD(1), types.USD(35000)}

	a := draftInvoice(t)
	for _, p := range prices {
		if _, err := a.AddLineItem("item", 1, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Finalize(testClock); err != nil {
		t.Fatal(err)
	}

	b := draftInvoice(t)
	for i := len(prices) - 1; i >= 0; i-- {
		if _, err := b.AddLineItem("item", 1, prices[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Finalize(testClock); err != nil {
		t.Fatal(err)
	}

	if !a.Total.Equal(*b.Total) {
		t.Errorf("totals differ by insertion order: %v vs %v", *a.Total, *b.Total)
	}
}

func TestFinalizeEmpty(t *testing.T) {
	inv := draftInvoice(t)
	err := inv.Finalize(testClock)
	if !errors.Is(err, invoice.ErrEmptyInvoice) {
		t.Errorf("got error %v, want ErrEmptyInvoice", err)
	}
	if inv.Status != invoice.StatusDraft {
		t.Error("failed Finalize must leave the invoice in draft")
	}
	if inv.Total != nil {
		t.Error("failed Finalize must not set a total")
	}
}

func TestFinalizeTwice(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(1000))
	if err := inv.Finalize(testClock.Add(time.Hour)); !errors.Is(err, invoice.ErrInvalidState) {
		t.Errorf("got error %v, want ErrInvalidState", err)
	}
	if !inv.FinalizedAt.Equal(testClock) {
		t.Error("FinalizedAt changed on rejected re-finalize")
	}
}

func TestRecordPayment(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(2000), types.USD(3500))

	p1, err := inv.RecordPayment(types.USD(2000), "wire-42", testClock)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if p1.Sequence != 1 {
		t.Errorf("Sequence: got %d, want 1", p1.Sequence)
	}
	if p1.Reference != "wire-42" {
		t.Errorf("Reference: got %q", p1.Reference)
	}
	if inv.Status != invoice.StatusFinalized {
		t.Errorf("Status after partial payment: got %q, want finalized", inv.Status)
	}

	balance, err := inv.Balance()
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Equal(types.USD(3500)) {
		t.Errorf("Balance: got %v, want %v", balance, types.USD(3500))
	}

	p2, err := inv.RecordPayment(types.USD(3500), "check-7", testClock.Add(time.Minute))
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if p2.Sequence != 2 {
		t.Errorf("Sequence: got %d, want 2", p2.Sequence)
	}

	if inv.Status != invoice.StatusPaid {
		t.Errorf("Status: got %q, want %q", inv.Status, invoice.StatusPaid)
	}
	if inv.PaidAt == nil {
		t.Fatal("PaidAt not set on full payment")
	}
	balance, err = inv.Balance()
	if err != nil {
		t.Fatal(err)
	}
	if !balance.IsZero() {
		t.Errorf("Balance after full payment: got %v, want zero", balance)
	}
}

func TestRecordPaymentRejections(t *testing.T) {
	tests := []struct {
		name    string
		amount  types.Money
		wantErr error
	}{
		{"Zero amount", types.USD(0), invoice.ErrInvalidAmount},
		{"Negative amount", types.USD(-500), invoice.ErrInvalidAmount},
		{"Currency mismatch", types.EUR(500), invoice.ErrCurrencyMismatch},
		{"Overpayment", types.USD(1001), invoice.ErrOverpayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := finalizedInvoice(t, types.USD(1000))
			_, err := inv.RecordPayment(tt.amount, "", testClock)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
			if len(inv.Payments) != 0 {
				t.Error("rejected payment appended to ledger")
			}
			if !inv.AmountPaid.IsZero() {
				t.Errorf("rejected payment changed AmountPaid: %v", inv.AmountPaid)
			}
		})
	}
}

func TestRecordPaymentOnDraft(t *testing.T) {
	inv := draftInvoice(t)
	_, err := inv.RecordPayment(types.USD(100), "", testClock)
	if !errors.Is(err, invoice.ErrInvalidState) {
		t.Errorf("got error %v, want ErrInvalidState", err)
	}
}

func TestRecordPaymentOnPaid(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(1000))
	if _, err := inv.RecordPayment(types.USD(1000), "", testClock); err != nil {
		t.Fatal(err)
	}
	if !inv.IsPaid() {
		t.Fatal("expected paid invoice")
	}

	// The balance is zero, so any positive payment is overpayment.
	_, err := inv.RecordPayment(types.USD(1), "", testClock)
	if !errors.Is(err, invoice.ErrOverpayment) {
		t.Errorf("got error %v, want ErrOverpayment", err)
	}
	if len(inv.Payments) != 1 {
		t.Error("payment appended to a paid invoice")
	}
}

func TestRecordPaymentOverpaymentRejectedWhole(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(5500))
	if _, err := inv.RecordPayment(types.USD(5000), "", testClock); err != nil {
		t.Fatal(err)
	}

	// $6 against a $5 balance: rejected entirely, not clamped to the balance.
	_, err := inv.RecordPayment(types.USD(600), "", testClock)
	if !errors.Is(err, invoice.ErrOverpayment) {
		t.Fatalf("got error %v, want ErrOverpayment", err)
	}
	if !inv.AmountPaid.Equal(types.USD(5000)) {
		t.Errorf("AmountPaid: got %v, want %v", inv.AmountPaid, types.USD(5000))
	}

	// The exact balance still goes through afterwards.
	if _, err := inv.RecordPayment(types.USD(500), "", testClock); err != nil {
		t.Fatalf("exact balance payment failed: %v", err)
	}
	if !inv.IsPaid() {
		t.Error("expected paid after exact balance payment")
	}
}

func TestRecordPaymentTimestampsMonotonic(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(3000))

	if _, err := inv.RecordPayment(types.USD(1000), "", testClock); err != nil {
		t.Fatal(err)
	}
	// Wall clock steps backwards; recorded time must not.
	p, err := inv.RecordPayment(types.USD(1000), "", testClock.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if p.RecordedAt.Before(inv.Payments[0].RecordedAt) {
		t.Errorf("RecordedAt went backwards: %v before %v", p.RecordedAt, inv.Payments[0].RecordedAt)
	}
	if p.Sequence != 2 {
		t.Errorf("Sequence: got %d, want 2", p.Sequence)
	}
}

func TestBalanceOnDraft(t *testing.T) {
	inv := draftInvoice(t)
	_, err := inv.Balance()
	if !errors.Is(err, invoice.ErrInvalidState) {
		t.Errorf("got error %v, want ErrInvalidState", err)
	}
}

func TestClone(t *testing.T) {
	inv := finalizedInvoice(t, types.USD(1000), types.USD(500))
	if _, err := inv.RecordPayment(types.USD(300), "ref", testClock); err != nil {
		t.Fatal(err)
	}

	clone := inv.Clone()

	// Mutating the clone must not touch the original.
	clone.Payments[0].Reference = "tampered"
	clone.LineItems[0].Description = "tampered"
	clone.Total.Amount = 1
	*clone.FinalizedAt = testClock.Add(time.Hour)

	if inv.Payments[0].Reference != "ref" {
		t.Error("payment mutation leaked through clone")
	}
	if inv.LineItems[0].Description == "tampered" {
		t.Error("line item mutation leaked through clone")
	}
	if !inv.Total.Equal(types.USD(1500)) {
		t.Error("total mutation leaked through clone")
	}
	if !inv.FinalizedAt.Equal(testClock) {
		t.Error("timestamp mutation leaked through clone")
	}
}
