package checkout

import (
	"context"
	"sync"

	"github.com/marketflow/storefront-service-go/internal/cart"
	"github.com/marketflow/storefront-service-go/internal/pricing"
	"github.com/marketflow/storefront-service-go/internal/promo"
	"github.com/marketflow/storefront-service-go/internal/shipping"
)

// PromoValidator resolves a promo code against a cart subtotal.
type PromoValidator interface {
	Validate(code string, cartSubtotal float64) (*promo.Applied, error)
}

// Quoter resolves a shipping quote. Implementations may call out to
// a rate source, so resolution is treated as asynchronous.
type Quoter interface {
	Quote(ctx context.Context, postalCode string, cartSubtotal float64) (*shipping.Quote, error)
}

// CalculatorQuoter adapts the static rate table to the Quoter contract.
type CalculatorQuoter struct {
	Calculator *shipping.Calculator
}

func (q CalculatorQuoter) Quote(ctx context.Context, postalCode string, cartSubtotal float64) (*shipping.Quote, error) {
	return q.Calculator.Calculate(postalCode, cartSubtotal)
}

// Session ties a cart store to at most one applied promo code and
// the latest shipping quote. Applying a new code replaces the old
// one; quotes supersede each other by request sequence, so a stale
// in-flight resolution can never overwrite a newer one.
type Session struct {
	store  *cart.Store
	promos PromoValidator
	quoter Quoter

	taxRate float64

	mu       sync.Mutex
	applied  *promo.Applied
	quote    *shipping.Quote
	quoteSeq uint64
}

func NewSession(store *cart.Store, promos PromoValidator, quoter Quoter, taxRate float64) *Session {
	if taxRate <= 0 {
		taxRate = pricing.DefaultTaxRate
	}
	return &Session{
		store:   store,
		promos:  promos,
		quoter:  quoter,
		taxRate: taxRate,
	}
}

// Store exposes the underlying cart store for mutations.
func (s *Session) Store() *cart.Store {
	return s.store
}

// ApplyPromo validates the code against the current subtotal and
// makes it the session's applied promo, replacing any prior one.
// Codes do not stack.
func (s *Session) ApplyPromo(code string) (*promo.Applied, error) {
	applied, err := s.promos.Validate(code, s.store.Subtotal())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.applied = applied
	s.mu.Unlock()

	return applied, nil
}

// RemovePromo drops the applied promo, if any.
func (s *Session) RemovePromo() {
	s.mu.Lock()
	s.applied = nil
	s.mu.Unlock()
}

// AppliedPromo returns the currently applied promo, or nil.
func (s *Session) AppliedPromo() *promo.Applied {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applied
}

// RequestQuote resolves a shipping quote for the current cart. Each
// request gets a monotonically increasing sequence number; the result
// becomes the session quote only when no newer request was issued
// while it was in flight. The resolved quote is returned either way.
func (s *Session) RequestQuote(ctx context.Context, postalCode string) (*shipping.Quote, error) {
	s.mu.Lock()
	s.quoteSeq++
	seq := s.quoteSeq
	s.mu.Unlock()

	q, err := s.quoter.Quote(ctx, postalCode, s.store.Subtotal())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if seq == s.quoteSeq {
		s.quote = q
	}
	s.mu.Unlock()

	return q, nil
}

// Quote returns the latest resolved shipping quote, or nil.
func (s *Session) Quote() *shipping.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quote
}

// Totals derives the current breakdown from the cart snapshot, the
// applied discount and the latest quote cost.
func (s *Session) Totals() pricing.Totals {
	s.mu.Lock()
	shippingCost := 0.0
	if s.quote != nil {
		shippingCost = s.quote.Cost
	}
	discount := 0.0
	if s.applied != nil {
		discount = s.applied.DiscountAmount
	}
	s.mu.Unlock()

	return pricing.ComputeTotals(s.store.Items(), shippingCost, discount, s.taxRate)
}
