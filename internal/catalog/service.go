package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrProductNotFound = errors.New("product not found")

// Service is the catalog source consumed by the cart and HTTP layers.
// Implementations return copies; callers never observe shared state.
type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

type memoryService struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
}

// NewMemoryService builds a catalog over an in-memory snapshot set.
func NewMemoryService(products []Product, categories []Category) Service {
	return &memoryService{
		products:   append([]Product(nil), products...),
		categories: append([]Category(nil), categories...),
	}
}

func (s *memoryService) GetAll(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Product(nil), s.products...), nil
}

func (s *memoryService) GetByID(ctx context.Context, id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *memoryService) GetByCategory(ctx context.Context, category string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryService) Search(ctx context.Context, query string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(query)
	out := make([]Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryService) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Category(nil), s.categories...), nil
}
