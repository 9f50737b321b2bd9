package order

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidStatus = errors.New("invalid status")

// Service is the order-history view consumed by the HTTP layer.
type Service interface {
	GetAll(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int) (*Order, error)
	GetByStatus(ctx context.Context, status string) ([]Order, error)
	Search(ctx context.Context, query string) ([]Order, error)
	UpdateStatus(ctx context.Context, id int, status Status) (*Order, error)
	Cancel(ctx context.Context, id int) (*Order, error)
	GetStats(ctx context.Context) (Stats, error)
}

type memoryService struct {
	mu     sync.RWMutex
	orders []Order
}

// NewMemoryService builds an order history over an in-memory set.
func NewMemoryService(orders []Order) Service {
	return &memoryService{orders: append([]Order(nil), orders...)}
}

func (s *memoryService) GetAll(ctx context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Order(nil), s.orders...), nil
}

func (s *memoryService) GetByID(ctx context.Context, id int) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrOrderNotFound
}

// GetByStatus filters by status; "all" returns every order.
func (s *memoryService) GetByStatus(ctx context.Context, status string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range s.orders {
		if status == "all" || string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// Search matches the order number or any item name, case-insensitive.
func (s *memoryService) Search(ctx context.Context, query string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(query)
	out := make([]Order, 0)
	for _, o := range s.orders {
		if strings.Contains(strings.ToLower(o.OrderNumber), term) || matchesItem(o.Items, term) {
			out = append(out, o)
		}
	}
	return out, nil
}

func matchesItem(items []Item, term string) bool {
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), term) {
			return true
		}
	}
	return false
}

func (s *memoryService) UpdateStatus(ctx context.Context, id int, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			cp := s.orders[i]
			return &cp, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *memoryService) Cancel(ctx context.Context, id int) (*Order, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

func (s *memoryService) GetStats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.orders)}
	for _, o := range s.orders {
		switch o.Status {
		case StatusProcessing:
			stats.Processing++
		case StatusShipped:
			stats.Shipped++
		case StatusDelivered:
			stats.Delivered++
		case StatusCancelled:
			stats.Cancelled++
		}
		stats.TotalValue += o.Total
	}
	return stats, nil
}
