package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/xraph/invoicing/invoice"
	"github.com/xraph/invoicing/types"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit             []OnInit
	onShutdown         []OnShutdown
	onInvoiceCreated   []OnInvoiceCreated
	onLineItemAdded    []OnLineItemAdded
	onInvoiceFinalized []OnInvoiceFinalized
	onInvoicePaid      []OnInvoicePaid
	onPaymentRecorded  []OnPaymentRecorded
	onPaymentRejected  []OnPaymentRejected
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := p.(OnLineItemAdded); ok {
		r.onLineItemAdded = append(r.onLineItemAdded, v)
	}
	if v, ok := p.(OnInvoiceFinalized); ok {
		r.onInvoiceFinalized = append(r.onInvoiceFinalized, v)
	}
	if v, ok := p.(OnInvoicePaid); ok {
		r.onInvoicePaid = append(r.onInvoicePaid, v)
	}
	if v, ok := p.(OnPaymentRecorded); ok {
		r.onPaymentRecorded = append(r.onPaymentRecorded, v)
	}
	if v, ok := p.(OnPaymentRejected); ok {
		r.onPaymentRejected = append(r.onPaymentRejected, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnInvoiceCreated)(nil)).Elem(), "OnInvoiceCreated")
	checkInterface(reflect.TypeOf((*OnLineItemAdded)(nil)).Elem(), "OnLineItemAdded")
	checkInterface(reflect.TypeOf((*OnInvoiceFinalized)(nil)).Elem(), "OnInvoiceFinalized")
	checkInterface(reflect.TypeOf((*OnInvoicePaid)(nil)).Elem(), "OnInvoicePaid")
	checkInterface(reflect.TypeOf((*OnPaymentRecorded)(nil)).Elem(), "OnPaymentRecorded")
	checkInterface(reflect.TypeOf((*OnPaymentRejected)(nil)).Elem(), "OnPaymentRejected")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceCreated emits an invoice created event.
func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv *invoice.Invoice) {
	r.mu.RLock()
	plugins := r.onInvoiceCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceCreated(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitLineItemAdded emits a line item added event.
func (r *Registry) EmitLineItemAdded(ctx context.Context, inv *invoice.Invoice, item *invoice.LineItem) {
	r.mu.RLock()
	plugins := r.onLineItemAdded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLineItemAdded(ctx, inv, item)
		}); err != nil {
			r.logger.Warn("plugin OnLineItemAdded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceFinalized emits an invoice finalized event.
func (r *Registry) EmitInvoiceFinalized(ctx context.Context, inv *invoice.Invoice) {
	r.mu.RLock()
	plugins := r.onInvoiceFinalized
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceFinalized(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceFinalized failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoicePaid emits an invoice paid event.
func (r *Registry) EmitInvoicePaid(ctx context.Context, inv *invoice.Invoice) {
	r.mu.RLock()
	plugins := r.onInvoicePaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoicePaid(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoicePaid failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPaymentRecorded emits a payment recorded event.
func (r *Registry) EmitPaymentRecorded(ctx context.Context, inv *invoice.Invoice, payment *invoice.Payment) {
	r.mu.RLock()
	plugins := r.onPaymentRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentRecorded(ctx, inv, payment)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPaymentRejected emits a payment rejected event.
func (r *Registry) EmitPaymentRejected(ctx context.Context, inv *invoice.Invoice, amount types.Money, reason error) {
	r.mu.RLock()
	plugins := r.onPaymentRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentRejected(ctx, inv, amount, reason)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentRejected failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the invoicing pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
