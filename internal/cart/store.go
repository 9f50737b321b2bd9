package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/marketflow/storefront-service-go/internal/catalog"
	"github.com/marketflow/storefront-service-go/internal/storage"
)

// Store maintains the cart line items and their durable persistence.
// Items are kept in insertion order with at most one line per product;
// quantity is always >= 1. Every mutation is written through to the
// slot; persistence failures are logged and never surfaced.
type Store struct {
	mu     sync.Mutex
	items  []LineItem
	slot   storage.Slot
	logger *log.Logger
}

// NewStore restores the cart from the slot. A missing or malformed
// saved value falls open to an empty cart.
func NewStore(ctx context.Context, slot storage.Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{slot: slot, logger: logger}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	raw, err := s.slot.Load(ctx)
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.Printf("restore cart: %v", err)
		}
		return
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Printf("restore cart: malformed saved value: %v", err)
		return
	}

	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		s.items = append(s.items, it)
	}
}

// Add merges the product into the cart: an existing line gains one
// more unit and keeps its original snapshot, a new product gets a
// fresh line with quantity 1.
func (s *Store) Add(ctx context.Context, p catalog.Product) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			s.mu.Unlock()
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, LineItem{ProductID: p.ID, Quantity: 1, Product: p})
	s.mu.Unlock()
	s.persist(ctx)
}

// UpdateQuantity sets the line's quantity to exactly newQuantity.
// A quantity below 1 removes the line instead. Unknown products are
// a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, newQuantity int) {
	if newQuantity < 1 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = newQuantity
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx)
	}
}

// Remove deletes the line if present; absent products are a no-op.
func (s *Store) Remove(ctx context.Context, productID int) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx)
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.persist(ctx)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]LineItem(nil), s.items...)
}

// Len reports the number of distinct line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Subtotal sums price x quantity over all line items.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, it := range s.items {
		total += it.lineTotal()
	}
	return total
}

func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	s.mu.Unlock()
	if err != nil {
		s.logger.Printf("persist cart: marshal: %v", err)
		return
	}

	if err := s.slot.Save(ctx, raw); err != nil {
		s.logger.Printf("persist cart: %v", err)
	}
}
