package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCart() Cart {
	c := Empty()
	c.ID = "cart-1"
	c = Reduce(c, AddItem{ProductID: "p1", Quantity: 2, UnitPrice: "9.99",
		Variant: VariantSelector{Color: "red", Size: "M"}})
	c.ID = "cart-1"
	return c
}

func TestSQLStore_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, "scope-1")

	t.Run("Success", func(t *testing.T) {
		payload, err := MarshalCart(testCart())
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"payload"}).AddRow(payload)
		mock.ExpectQuery("SELECT payload FROM carts").
			WithArgs("scope-1").
			WillReturnRows(rows)

		c, err := store.Load(context.Background())
		assert.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, testCart(), *c)
	})

	t.Run("NoPersistedCart", func(t *testing.T) {
		mock.ExpectQuery("SELECT payload FROM carts").
			WithArgs("scope-1").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}))

		c, err := store.Load(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("CorruptPayloadDiscarded", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"items":[{"pro`))
		mock.ExpectQuery("SELECT payload FROM carts").
			WithArgs("scope-1").
			WillReturnRows(rows)
		mock.ExpectExec("DELETE FROM carts").
			WithArgs("scope-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, err := store.Load(context.Background())
		assert.NoError(t, err, "corrupt state must recover, not propagate")
		assert.Nil(t, c)
	})

	t.Run("SchemaMismatchDiscarded", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"payload"}).
			AddRow([]byte(`{"items":[{"productId":"p1","quantity":-2}],"totalQuantity":0,"totalPrice":"0.00"}`))
		mock.ExpectQuery("SELECT payload FROM carts").
			WithArgs("scope-1").
			WillReturnRows(rows)
		mock.ExpectExec("DELETE FROM carts").
			WithArgs("scope-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, err := store.Load(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT payload FROM carts").
			WillReturnError(errors.New("db error"))

		_, err := store.Load(context.Background())
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, "scope-1")

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO carts").
			WithArgs("scope-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, store.Save(context.Background(), testCart()))
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO carts").
			WillReturnError(errors.New("db error"))

		assert.Error(t, store.Save(context.Background(), testCart()))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, "scope-1")

	mock.ExpectExec("DELETE FROM carts").
		WithArgs("scope-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
