package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketflow/storefront-service-go/internal/catalog"
	"github.com/marketflow/storefront-service-go/internal/storage"
)

var (
	headphones = catalog.Product{ID: 1, Title: "Wireless Bluetooth Headphones", Price: 79.99, InStock: true, Category: "electronics"}
	yogaMat    = catalog.Product{ID: 12, Title: "Non-Slip Yoga Mat", Price: 30.00, InStock: true, Category: "sports"}
)

func newTestStore(t *testing.T) (*Store, storage.Slot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	return NewStore(context.Background(), slot, nil), slot
}

func TestAdd_MergesSameProduct(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, headphones)
	s.Add(ctx, headphones)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, headphones.Price, items[0].Product.Price)
}

func TestAdd_KeepsOriginalSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, headphones)

	// A later add with a changed catalog price must not refresh the
	// embedded snapshot.
	repriced := headphones
	repriced.Price = 99.99
	s.Add(ctx, repriced)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 79.99, items[0].Product.Price)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, yogaMat)
	s.Add(ctx, headphones)
	s.Add(ctx, yogaMat)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, yogaMat.ID, items[0].ProductID)
	assert.Equal(t, headphones.ID, items[1].ProductID)
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, headphones)
	s.UpdateQuantity(ctx, headphones.ID, 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateQuantity_BelowOneRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -5} {
		s, _ := newTestStore(t)
		ctx := context.Background()

		s.Add(ctx, headphones)
		s.UpdateQuantity(ctx, headphones.ID, qty)

		assert.Equal(t, 0, s.Len(), "quantity %d should remove the line", qty)
	}
}

func TestUpdateQuantity_UnknownProductIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, headphones)
	s.UpdateQuantity(ctx, 999, 3)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemove_AbsentProductIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, headphones)
	s.Remove(ctx, 999)
	s.Remove(ctx, headphones.ID)
	s.Remove(ctx, headphones.ID)

	assert.Equal(t, 0, s.Len())
}

func TestSubtotal(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, yogaMat)
	s.Add(ctx, yogaMat)

	assert.Equal(t, 60.00, s.Subtotal())
}

func TestRoundTrip_RestoreEqualsPersisted(t *testing.T) {
	slot := storage.NewMemorySlot()
	ctx := context.Background()

	s := NewStore(ctx, slot, nil)
	s.Add(ctx, headphones)
	s.Add(ctx, yogaMat)
	s.UpdateQuantity(ctx, yogaMat.ID, 3)

	restored := NewStore(ctx, slot, nil)
	require.Equal(t, s.Items(), restored.Items())
}

func TestRestore_MalformedValueFailsOpen(t *testing.T) {
	slot := storage.NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, slot.Save(ctx, []byte("{not json")))

	s := NewStore(ctx, slot, nil)
	assert.Equal(t, 0, s.Len())
}

func TestRestore_DropsNonPositiveQuantities(t *testing.T) {
	slot := storage.NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, slot.Save(ctx, []byte(`[
		{"productId":1,"quantity":2,"product":{"id":1,"price":10}},
		{"productId":2,"quantity":0,"product":{"id":2,"price":5}}
	]`)))

	s := NewStore(ctx, slot, nil)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ProductID)
}

type failingSlot struct {
	loadErr error
	saveErr error
}

func (f *failingSlot) Load(ctx context.Context) ([]byte, error) { return nil, f.loadErr }
func (f *failingSlot) Save(ctx context.Context, value []byte) error {
	return f.saveErr
}

func TestPersistFailure_IsNonFatal(t *testing.T) {
	slot := &failingSlot{loadErr: storage.ErrNotFound, saveErr: errors.New("disk full")}
	ctx := context.Background()

	s := NewStore(ctx, slot, nil)
	s.Add(ctx, headphones)

	// Mutation survives even though the write-through failed.
	assert.Equal(t, 1, s.Len())
}
