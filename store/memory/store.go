// Package memory provides an in-memory store, used for tests and
// single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/invoicing"
	"github.com/xraph/invoicing/id"
	"github.com/xraph/invoicing/invoice"
)

type Store struct {
	mu sync.RWMutex

	// Invoice storage, keyed by invoice ID. Numbers index the same records
	// for the uniqueness check and number lookups.
	invoices map[string]*invoice.Invoice
	numbers  map[string]string // number -> invoice ID
}

func New() *Store {
	return &Store{
		invoices: make(map[string]*invoice.Invoice),
		numbers:  make(map[string]string),
	}
}

// Invoice Store implementation.
// Records are cloned on the way in and out, so a caller mutating an
// aggregate never changes stored state until UpdateInvoice commits it.

func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; exists {
		return invoicing.ErrAlreadyExists
	}
	if _, exists := s.numbers[inv.Number]; exists {
		return invoicing.ErrDuplicateNumber
	}

	s.invoices[inv.ID.String()] = inv.Clone()
	s.numbers[inv.Number] = inv.ID.String()
	return nil
}

func (s *Store) GetInvoice(_ context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[invID.String()]; ok {
		return inv.Clone(), nil
	}
	return nil, invoicing.ErrInvoiceNotFound
}

func (s *Store) GetInvoiceByNumber(_ context.Context, number string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if invID, ok := s.numbers[number]; ok {
		return s.invoices[invID].Clone(), nil
	}
	return nil, invoicing.ErrInvoiceNotFound
}

func (s *Store) ListInvoices(_ context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*invoice.Invoice, 0)
	for _, inv := range s.invoices {
		if opts.Status == "" || inv.Status == opts.Status {
			result = append(result, inv.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Number < result[j].Number
	})

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; !exists {
		return invoicing.ErrInvoiceNotFound
	}
	s.invoices[inv.ID.String()] = inv.Clone()
	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, invID id.InvoiceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, exists := s.invoices[invID.String()]
	if !exists {
		return invoicing.ErrInvoiceNotFound
	}

	delete(s.numbers, inv.Number)
	delete(s.invoices, invID.String())
	return nil
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
