package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{ID: 1, Title: "Wireless Bluetooth Headphones", Price: 79.99, InStock: true, Category: "electronics"},
		{ID: 5, Title: "Classic Cotton T-Shirt", Price: 19.99, InStock: true, Category: "clothing"},
		{ID: 12, Title: "Non-Slip Yoga Mat", Price: 30.00, InStock: true, Category: "sports"},
	}
}

func TestGetByID(t *testing.T) {
	s := NewMemoryService(testProducts(), nil)
	ctx := context.Background()

	p, err := s.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Classic Cotton T-Shirt", p.Title)

	_, err = s.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetByID_ReturnsACopy(t *testing.T) {
	s := NewMemoryService(testProducts(), nil)
	ctx := context.Background()

	p, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	p.Price = 1.00

	again, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 79.99, again.Price)
}

func TestGetByCategory(t *testing.T) {
	s := NewMemoryService(testProducts(), nil)

	got, err := s.GetByCategory(context.Background(), "clothing")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].ID)
}

func TestSearch_TitleAndCategory(t *testing.T) {
	s := NewMemoryService(testProducts(), nil)
	ctx := context.Background()

	byTitle, err := s.Search(ctx, "yoga")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, 12, byTitle[0].ID)

	byCategory, err := s.Search(ctx, "ELECTRONICS")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, 1, byCategory[0].ID)
}

func TestSeededService(t *testing.T) {
	s, err := NewSeededService()
	require.NoError(t, err)
	ctx := context.Background()

	products, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}
