package invoicing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/plugin"
	"github.com/xraph/invoicing/store"
	"github.com/xraph/invoicing/types"
)

// Engine is the main invoicing engine. It owns the load-check-mutate-persist
// cycle for every invoice: all writes to an invoice go through a per-invoice
// lock, so aggregate invariants (monotonic status, amount_paid never above
// total) hold even under concurrent callers.
type Engine struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	clock   func() time.Time

	// Per-invoice write locks, keyed by invoice ID.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		clock:   time.Now,
		locks:   make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("invoicing engine started",
		"plugins", e.plugins.Count(),
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// lockInvoice returns the write lock for an invoice, creating it on first use.
func (e *Engine) lockInvoice(invoiceID id.InvoiceID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := invoiceID.String()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

func (e *Engine) releaseInvoice(invoiceID id.InvoiceID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.locks, invoiceID.String())
}

// ──────────────────────────────────────────────────
// Invoice Lifecycle
// ──────────────────────────────────────────────────

// CreateInvoice creates a new draft invoice. The invoice number must be
// unique; a clash returns ErrDuplicateNumber.
func (e *Engine) CreateInvoice(ctx context.Context, number, customerName, currency string) (*invoice.Invoice, error) {
	if number == "" || customerName == "" {
		return nil, ErrInvalidInput
	}
	if !types.ValidCurrency(currency) {
		return nil, ErrInvalidCurrency
	}

	inv := invoice.New(number, customerName, currency)

	if err := e.store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	e.logger.Debug("invoice created",
		"invoice_id", inv.ID,
		"number", inv.Number,
		"currency", inv.Currency,
	)

	e.plugins.EmitInvoiceCreated(ctx, inv)
	return inv, nil
}

// GetInvoice retrieves an invoice by ID.
func (e *Engine) GetInvoice(ctx context.Context, invoiceID id.InvoiceID) (*invoice.Invoice, error) {
	return e.store.GetInvoice(ctx, invoiceID)
}

// GetInvoiceByNumber retrieves an invoice by its unique number.
func (e *Engine) GetInvoiceByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return e.store.GetInvoiceByNumber(ctx, number)
}

// ListInvoices lists invoices, optionally filtered by status.
func (e *Engine) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	return e.store.ListInvoices(ctx, opts)
}

// ListPayments returns the payments recorded against an invoice, in
// submission order.
func (e *Engine) ListPayments(ctx context.Context, invoiceID id.InvoiceID) ([]invoice.Payment, error) {
	inv, err := e.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payments := make([]invoice.Payment, len(inv.Payments))
	copy(payments, inv.Payments)
	return payments, nil
}

// AddLineItem appends a line item to a draft invoice.
func (e *Engine) AddLineItem(ctx context.Context, invoiceID id.InvoiceID, description string, quantity int64, unitPrice types.Money) (*invoice.LineItem, error) {
	lock := e.lockInvoice(invoiceID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := e.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := inv.AddLineItem(description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	if err := e.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	e.plugins.EmitLineItemAdded(ctx, inv, item)
	return item, nil
}

// FinalizeInvoice transitions a draft invoice to finalized, freezing its
// line items and computing the total. Finalizing an empty invoice fails
// with ErrEmptyInvoice; a second call returns ErrInvalidState.
func (e *Engine) FinalizeInvoice(ctx context.Context, invoiceID id.InvoiceID) (*invoice.Invoice, error) {
	lock := e.lockInvoice(invoiceID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := e.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Finalize(e.clock()); err != nil {
		return nil, err
	}

	if err := e.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	e.logger.Info("invoice finalized",
		"invoice_id", inv.ID,
		"number", inv.Number,
		"total", inv.Total.String(),
	)

	e.plugins.EmitInvoiceFinalized(ctx, inv)
	return inv, nil
}

// ──────────────────────────────────────────────────
// Payment Ledger
// ──────────────────────────────────────────────────

// RecordPayment records a payment against a finalized invoice. The check
// against the remaining balance and the append run under the invoice's
// write lock, so two payments that only fit one at a time resolve to
// exactly one success and one ErrOverpayment.
func (e *Engine) RecordPayment(ctx context.Context, invoiceID id.InvoiceID, amount types.Money, reference string) (*invoice.Payment, error) {
	lock := e.lockInvoice(invoiceID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := e.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payment, err := inv.RecordPayment(amount, reference, e.clock())
	if err != nil {
		e.plugins.EmitPaymentRejected(ctx, inv, amount, err)
		return nil, err
	}

	if err := e.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	e.logger.Info("payment recorded",
		"invoice_id", inv.ID,
		"payment_id", payment.ID,
		"amount", payment.Amount.String(),
		"amount_paid", inv.AmountPaid.String(),
	)

	e.plugins.EmitPaymentRecorded(ctx, inv, payment)

	if inv.IsPaid() {
		e.plugins.EmitInvoicePaid(ctx, inv)
	}

	return payment, nil
}

// Balance returns the remaining amount due on a finalized invoice.
func (e *Engine) Balance(ctx context.Context, invoiceID id.InvoiceID) (types.Money, error) {
	inv, err := e.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return types.Money{}, err
	}

	return inv.Balance()
}

// DeleteInvoice removes a draft invoice. Finalized and paid invoices are
// permanent records and cannot be deleted.
func (e *Engine) DeleteInvoice(ctx context.Context, invoiceID id.InvoiceID) error {
	lock := e.lockInvoice(invoiceID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := e.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	if !inv.IsDraft() {
		return ErrInvalidState
	}

	if err := e.store.DeleteInvoice(ctx, invoiceID); err != nil {
		return err
	}

	e.releaseInvoice(invoiceID)

	e.logger.Debug("invoice deleted",
		"invoice_id", invoiceID,
		"number", inv.Number,
	)

	return nil
}
