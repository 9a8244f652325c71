// Package observability provides a metrics extension that records invoicing
// lifecycle event counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/plugin"
	"github.com/xraph/invoicing/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceCreated   = (*MetricsExtension)(nil)
	_ plugin.OnLineItemAdded    = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceFinalized = (*MetricsExtension)(nil)
	_ plugin.OnInvoicePaid      = (*MetricsExtension)(nil)
	_ plugin.OnPaymentRecorded  = (*MetricsExtension)(nil)
	_ plugin.OnPaymentRejected  = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as an invoicing plugin to automatically track billing metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Invoice metrics
	InvoiceCreated   Counter
	LineItemsAdded   Counter
	InvoiceFinalized Counter
	InvoicePaid      Counter
	InvoiceTotal     Histogram

	// Payment metrics
	PaymentRecorded Counter
	PaymentRejected Counter
	PaymentAmount   Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Invoice metrics
		InvoiceCreated:   factory.Counter("invoicing.invoice.created"),
		LineItemsAdded:   factory.Counter("invoicing.invoice.line_items.added"),
		InvoiceFinalized: factory.Counter("invoicing.invoice.finalized"),
		InvoicePaid:      factory.Counter("invoicing.invoice.paid"),
		InvoiceTotal:     factory.Histogram("invoicing.invoice.total_amount"),

		// Payment metrics
		PaymentRecorded: factory.Counter("invoicing.payment.recorded"),
		PaymentRejected: factory.Counter("invoicing.payment.rejected"),
		PaymentAmount:   factory.Histogram("invoicing.payment.amount"),

		// Error metrics
		StoreErrors:  factory.Counter("invoicing.store.errors"),
		PluginErrors: factory.Counter("invoicing.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, _ *invoice.Invoice) error {
	m.InvoiceCreated.Inc()
	return nil
}

// OnLineItemAdded implements plugin.OnLineItemAdded.
func (m *MetricsExtension) OnLineItemAdded(_ context.Context, _ *invoice.Invoice, _ *invoice.LineItem) error {
	m.LineItemsAdded.Inc()
	return nil
}

// OnInvoiceFinalized implements plugin.OnInvoiceFinalized.
func (m *MetricsExtension) OnInvoiceFinalized(_ context.Context, inv *invoice.Invoice) error {
	m.InvoiceFinalized.Inc()
	if inv.Total != nil {
		m.InvoiceTotal.Observe(float64(inv.Total.Amount))
	}
	return nil
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (m *MetricsExtension) OnInvoicePaid(_ context.Context, _ *invoice.Invoice) error {
	m.InvoicePaid.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Payment ledger hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded implements plugin.OnPaymentRecorded.
func (m *MetricsExtension) OnPaymentRecorded(_ context.Context, _ *invoice.Invoice, payment *invoice.Payment) error {
	m.PaymentRecorded.Inc()
	m.PaymentAmount.Observe(float64(payment.Amount.Amount))
	return nil
}

// OnPaymentRejected implements plugin.OnPaymentRejected.
func (m *MetricsExtension) OnPaymentRejected(_ context.Context, _ *invoice.Invoice, _ types.Money, _ error) error {
	m.PaymentRejected.Inc()
	return nil
}
