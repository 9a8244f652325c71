// Package audithook bridges invoicing lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/plugin"
	"github.com/xraph/invoicing/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnInvoiceCreated   = (*Extension)(nil)
	_ plugin.OnLineItemAdded    = (*Extension)(nil)
	_ plugin.OnInvoiceFinalized = (*Extension)(nil)
	_ plugin.OnInvoicePaid      = (*Extension)(nil)
	_ plugin.OnPaymentRecorded  = (*Extension)(nil)
	_ plugin.OnPaymentRejected  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges invoicing lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoiceCreated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID.String(), CategoryBilling, nil,
		"number", inv.Number,
		"customer", inv.CustomerName,
		"currency", inv.Currency,
	)
}

// OnLineItemAdded implements plugin.OnLineItemAdded.
func (e *Extension) OnLineItemAdded(ctx context.Context, inv *invoice.Invoice, item *invoice.LineItem) error {
	return e.record(ctx, ActionLineItemAdded, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID.String(), CategoryBilling, nil,
		"line_item_id", item.ID.String(),
		"description", item.Description,
		"quantity", item.Quantity,
		"amount", item.Amount.String(),
	)
}

// OnInvoiceFinalized implements plugin.OnInvoiceFinalized.
func (e *Extension) OnInvoiceFinalized(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoiceFinalized, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID.String(), CategoryBilling, nil,
		"number", inv.Number,
		"total", inv.Total.String(),
		"line_items", len(inv.LineItems),
	)
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (e *Extension) OnInvoicePaid(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoicePaid, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID.String(), CategoryPayment, nil,
		"number", inv.Number,
		"amount_paid", inv.AmountPaid.String(),
	)
}

// ──────────────────────────────────────────────────
// Payment ledger hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded implements plugin.OnPaymentRecorded.
func (e *Extension) OnPaymentRecorded(ctx context.Context, inv *invoice.Invoice, payment *invoice.Payment) error {
	return e.record(ctx, ActionPaymentRecorded, SeverityInfo, OutcomeSuccess,
		ResourcePayment, payment.ID.String(), CategoryPayment, nil,
		"invoice_id", inv.ID.String(),
		"sequence", payment.Sequence,
		"amount", payment.Amount.String(),
		"reference", payment.Reference,
	)
}

// OnPaymentRejected implements plugin.OnPaymentRejected.
func (e *Extension) OnPaymentRejected(ctx context.Context, inv *invoice.Invoice, amount types.Money, reason error) error {
	return e.record(ctx, ActionPaymentRejected, SeverityWarning, OutcomeFailure,
		ResourceInvoice, inv.ID.String(), CategoryPayment, reason,
		"number", inv.Number,
		"amount", amount.String(),
		"amount_paid", inv.AmountPaid.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
