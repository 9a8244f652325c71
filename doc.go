// Package invoicing provides an embeddable invoice and payment engine for Go
// applications.
//
// Invoicing is designed as a library, not a service. Import it directly into
// your Go application. It provides:
//
//   - Integer-only Money arithmetic in the smallest currency unit
//   - A draft → finalized → paid invoice lifecycle with frozen totals
//   - An append-only payment ledger that rejects overpayment, including
//     under concurrent submission
//   - Pluggable storage (memory, SQLite, PostgreSQL, MongoDB)
//   - Lifecycle plugins for audit and metrics
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/xraph/invoicing"
//	    "github.com/xraph/invoicing/store/memory"
//	)
//
//	eng := invoicing.New(memory.New())
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// # Core Concepts
//
// Invoices start as drafts and accumulate line items:
//
//	inv, err := eng.CreateInvoice(ctx, "INV-001", "Acme Corp", "usd")
//	_, err = eng.AddLineItem(ctx, inv.ID, "Widget", 2, invoicing.USD(1000))
//
// Finalizing locks the line items and computes the total. Only finalized
// invoices accept payments:
//
//	inv, err = eng.FinalizeInvoice(ctx, inv.ID)
//	_, err = eng.RecordPayment(ctx, inv.ID, invoicing.USD(2000), "wire-42")
//
// The engine enforces the ledger invariant that the amount paid never
// exceeds the total: a payment that would overshoot the remaining balance
// is rejected whole. When the amount paid reaches the total exactly, the
// invoice flips to paid on its own.
//
// All monetary calculations use integer arithmetic to avoid floating-point
// precision issues. The Money type represents amounts in the smallest
// currency unit (cents for USD, pence for GBP, etc).
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	inv_01h455vb4pex5vsknk084sn02q  // Invoice ID
//	li_01h2xcejqtf2nbrexx3vqjhp41   // Line item ID
//	pay_01h2xcejqtf2nbrexx3vqjhp41  // Payment ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package invoicing
