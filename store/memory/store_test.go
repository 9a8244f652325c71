package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/invoicing"
	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/store/memory"
	"github.com/xraph/invoicing/types"
)

func newInvoice(number string, createdAt time.Time) *invoice.Invoice {
	inv := invoice.New(number, "Acme Corp", "usd")
	inv.CreatedAt = createdAt
	return inv
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	inv := newInvoice("INV-001", time.Now().UTC())
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	got, err := s.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Number != "INV-001" || got.CustomerName != "Acme Corp" {
		t.Errorf("unexpected record: %+v", got)
	}

	byNumber, err := s.GetInvoiceByNumber(ctx, "INV-001")
	if err != nil {
		t.Fatalf("GetInvoiceByNumber: %v", err)
	}
	if byNumber.ID != inv.ID {
		t.Errorf("ID mismatch: %v != %v", byNumber.ID, inv.ID)
	}
}

func TestCreateDuplicates(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	inv := newInvoice("INV-001", time.Now().UTC())
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatal(err)
	}

	if err := s.CreateInvoice(ctx, inv); !errors.Is(err, invoicing.ErrAlreadyExists) {
		t.Errorf("same ID: got %v, want ErrAlreadyExists", err)
	}

	other := newInvoice("INV-001", time.Now().UTC())
	if err := s.CreateInvoice(ctx, other); !errors.Is(err, invoicing.ErrDuplicateNumber) {
		t.Errorf("same number: got %v, want ErrDuplicateNumber", err)
	}
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if _, err := s.GetInvoice(ctx, invoice.New("X", "Y", "usd").ID); !errors.Is(err, invoicing.ErrInvoiceNotFound) {
		t.Errorf("got %v, want ErrInvoiceNotFound", err)
	}
	if _, err := s.GetInvoiceByNumber(ctx, "missing"); !errors.Is(err, invoicing.ErrInvoiceNotFound) {
		t.Errorf("got %v, want ErrInvoiceNotFound", err)
	}
}

func TestCloneIsolation(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	inv := newInvoice("INV-001", time.Now().UTC())
	if _, err := inv.AddLineItem("Widget", 1, types.USD(1000)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's aggregate after Create must not change stored state.
	inv.CustomerName = "tampered"
	inv.LineItems[0].Description = "tampered"

	got, err := s.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CustomerName != "Acme Corp" {
		t.Error("caller mutation leaked into the store")
	}
	if got.LineItems[0].Description != "Widget" {
		t.Error("line item mutation leaked into the store")
	}

	// Mutating a returned aggregate must not change stored state either.
	got.CustomerName = "tampered"
	again, err := s.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.CustomerName != "Acme Corp" {
		t.Error("reader mutation leaked into the store")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	inv := newInvoice("INV-001", time.Now().UTC())
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatal(err)
	}

	if _, err := inv.AddLineItem("Widget", 2, types.USD(1000)); err != nil {
		t.Fatal(err)
	}
	if err := inv.Finalize(time.Now().UTC()); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateInvoice(ctx, inv); err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}

	got, err := s.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != invoice.StatusFinalized {
		t.Errorf("Status: got %q, want finalized", got.Status)
	}
	if got.Total == nil || !got.Total.Equal(types.USD(2000)) {
		t.Errorf("Total: got %v, want $20.00", got.Total)
	}

	missing := newInvoice("INV-404", time.Now().UTC())
	if err := s.UpdateInvoice(ctx, missing); !errors.Is(err, invoicing.ErrInvoiceNotFound) {
		t.Errorf("got %v, want ErrInvoiceNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	inv := newInvoice("INV-001", time.Now().UTC())
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}

	if _, err := s.GetInvoice(ctx, inv.ID); !errors.Is(err, invoicing.ErrInvoiceNotFound) {
		t.Errorf("got %v, want ErrInvoiceNotFound", err)
	}

	// The number is free again.
	if err := s.CreateInvoice(ctx, newInvoice("INV-001", time.Now().UTC())); err != nil {
		t.Errorf("number not released after delete: %v", err)
	}

	if err := s.DeleteInvoice(ctx, inv.ID); !errors.Is(err, invoicing.ErrInvoiceNotFound) {
		t.Errorf("double delete: got %v, want ErrInvoiceNotFound", err)
	}
}

func TestListInvoices(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	numbers := []string{"INV-003", "INV-001", "INV-002"}
	for i, number := range numbers {
		inv := newInvoice(number, base.Add(time.Duration(i)*time.Hour))
		if err := s.CreateInvoice(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}

	// Ordered by creation time, not number.
	all, err := s.ListInvoices(ctx, invoice.ListOpts{})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(all))
	}
	for i, want := range numbers {
		if all[i].Number != want {
			t.Errorf("position %d: got %q, want %q", i, all[i].Number, want)
		}
	}

	// Pagination.
	page, err := s.ListInvoices(ctx, invoice.ListOpts{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Number != "INV-001" || page[1].Number != "INV-002" {
		t.Errorf("unexpected page: %v", pageNumbers(page))
	}

	// Offset past the end.
	empty, err := s.ListInvoices(ctx, invoice.ListOpts{Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page, got %d", len(empty))
	}
}

func TestListInvoicesByStatus(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	draft := newInvoice("INV-001", base)
	if err := s.CreateInvoice(ctx, draft); err != nil {
		t.Fatal(err)
	}

	final := newInvoice("INV-002", base.Add(time.Hour))
	if _, err := final.AddLineItem("Widget", 1, types.USD(1000)); err != nil {
		t.Fatal(err)
	}
	if err := final.Finalize(base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateInvoice(ctx, final); err != nil {
		t.Fatal(err)
	}

	drafts, err := s.ListInvoices(ctx, invoice.ListOpts{Status: invoice.StatusDraft})
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 1 || drafts[0].Number != "INV-001" {
		t.Errorf("unexpected drafts: %v", pageNumbers(drafts))
	}

	paid, err := s.ListInvoices(ctx, invoice.ListOpts{Status: invoice.StatusPaid})
	if err != nil {
		t.Fatal(err)
	}
	if len(paid) != 0 {
		t.Errorf("expected no paid invoices, got %d", len(paid))
	}
}

func pageNumbers(invoices []*invoice.Invoice) []string {
	out := make([]string, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.Number
	}
	return out
}
