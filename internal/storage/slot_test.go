package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot_LoadBeforeSave(t *testing.T) {
	slot := NewMemorySlot()

	_, err := slot.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySlot_SaveReplacesValue(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, []byte("one")))
	require.NoError(t, slot.Save(ctx, []byte("two")))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestMemorySlot_LoadReturnsACopy(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, []byte("value")))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	got[0] = 'X'

	again, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}
