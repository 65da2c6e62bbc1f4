// =============================================================================
// Coupon Settlement System - Settlement Store
// =============================================================================
//
// This module defines the persistence collaborator for settlement
// statements and a reference in-memory implementation. The core only ever
// calls RecordSettlement, once per statement; everything about how documents
// are kept is behind the interface.
//
// =============================================================================

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// StatusUnpaid is the initial status of every recorded settlement.
const StatusUnpaid = "미입금"

// SettlementDocument is the persisted form of one settlement statement.
type SettlementDocument struct {
	// VendorCode is the coupon code the settlement is owed under.
	VendorCode string

	// TotalAmount is the amount owed, in won.
	TotalAmount int

	// Message is the rendered settlement message text.
	Message string

	// SettlementMonth is the settled month, "YYYY-MM".
	SettlementMonth string

	// ItemCount is the number of settled customers.
	ItemCount int

	// SchemaTag is the classified file schema ("wedding"/"firstbirthday").
	SchemaTag string

	// Status is the payment status, initialized to StatusUnpaid.
	Status string
}

// Store records settlement documents. Implementations must generate and
// return a document identifier on success.
type Store interface {
	RecordSettlement(ctx context.Context, doc SettlementDocument) (id string, err error)

	// Ping verifies the store is reachable before any per-statement attempt
	// is made. Total unavailability is reported here, upfront, so it is
	// distinguishable from per-statement failures.
	Ping(ctx context.Context) error
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// MemoryStore keeps documents in memory. It backs dry runs and tests.
type MemoryStore struct {
	mu        sync.Mutex
	documents map[string]SettlementDocument
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: make(map[string]SettlementDocument)}
}

// RecordSettlement stores the document under a fresh UUID.
func (s *MemoryStore) RecordSettlement(_ context.Context, doc SettlementDocument) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.documents[id] = doc
	return id, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Get returns a stored document by id.
func (s *MemoryStore) Get(id string) (SettlementDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.documents)
}
