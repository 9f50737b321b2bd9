package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketflow/storefront-service-go/internal/cart"
	"github.com/marketflow/storefront-service-go/internal/catalog"
	"github.com/marketflow/storefront-service-go/internal/storage"
	"github.com/marketflow/storefront-service-go/internal/testutil"
)

func TestPostgresSlot_RoundTrip(t *testing.T) {
	t.Parallel()

	db, cleanup := testutil.StartPostgres(t)
	defer cleanup()

	slot := storage.NewPostgresSlot(db, "marketflow-cart")
	ctx := context.Background()

	_, err := slot.Load(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, slot.Save(ctx, []byte(`[{"productId":1,"quantity":2}]`)))
	require.NoError(t, slot.Save(ctx, []byte(`[{"productId":1,"quantity":3}]`)))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"productId":1,"quantity":3}]`), got)
}

func TestRedisSlot_RoundTrip(t *testing.T) {
	t.Parallel()

	client, cleanup := testutil.StartRedis(t)
	defer cleanup()

	slot := storage.NewRedisSlot(client, "marketflow-cart")
	ctx := context.Background()

	_, err := slot.Load(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, slot.Save(ctx, []byte(`[]`)))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestCartStore_PersistsAcrossSessionsOnPostgres(t *testing.T) {
	t.Parallel()

	db, cleanup := testutil.StartPostgres(t)
	defer cleanup()

	slot := storage.NewPostgresSlot(db, "marketflow-cart")
	ctx := context.Background()

	first := cart.NewStore(ctx, slot, nil)
	first.Add(ctx, catalog.Product{ID: 12, Title: "Non-Slip Yoga Mat", Price: 30.00, InStock: true})
	first.Add(ctx, catalog.Product{ID: 12, Title: "Non-Slip Yoga Mat", Price: 30.00, InStock: true})

	second := cart.NewStore(ctx, slot, nil)
	require.Equal(t, first.Items(), second.Items())
	assert.InDelta(t, 60.00, second.Subtotal(), 1e-9)
}
