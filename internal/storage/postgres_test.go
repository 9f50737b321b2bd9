package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSlot_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM cart_slots WHERE slot_key = $1`)).
		WithArgs("marketflow-cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"productId":1}]`)))

	slot := NewPostgresSlot(db, "marketflow-cart")

	got, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"productId":1}]`), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlot_LoadEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM cart_slots WHERE slot_key = $1`)).
		WithArgs("marketflow-cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	slot := NewPostgresSlot(db, "marketflow-cart")

	_, err = slot.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlot_SaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_slots`)).
		WithArgs("marketflow-cart", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	slot := NewPostgresSlot(db, "marketflow-cart")

	require.NoError(t, slot.Save(context.Background(), []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlot_SaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_slots`)).
		WithArgs("marketflow-cart", []byte(`[]`)).
		WillReturnError(errors.New("connection reset"))

	slot := NewPostgresSlot(db, "marketflow-cart")

	err = slot.Save(context.Background(), []byte(`[]`))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
