package checkout

import (
	"context"
	"testing"
	"time"

	"scentora-be/internal/inventory"
	"scentora-be/internal/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLineRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_id", "name", "brand_name", "quantity", "price", "discount_percent",
	}).
		AddRow(int64(1), "Aventus", "Creed", 2, "100.00", 10).
		AddRow(int64(2), "Sauvage", "Dior", 1, "50.00", 0)
}

func TestRepository_CreateOrderTx(t *testing.T) {
	ctx := context.Background()
	details := DeliveryDetails{
		WhatsappNumber:  "994501234567",
		DeliveryAddress: "Baku, Nizami St. 1",
		CustomerNotes:   "call before delivery",
	}
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT(.|\n)*FROM cart_items c").
			WithArgs(int64(7)).
			WillReturnRows(cartLineRows())
		mock.ExpectExec("UPDATE products").
			WithArgs(2, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products").
			WithArgs(1, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(int64(7), sqlmock.AnyArg(), order.StatusPending,
				details.WhatsappNumber, details.DeliveryAddress, details.CustomerNotes).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), now, now))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(int64(42), int64(1), "Aventus", "Creed", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(int64(42), int64(2), "Sauvage", "Dior", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)))
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		o, err := repo.CreateOrderTx(ctx, 7, details)
		require.NoError(t, err)

		assert.Equal(t, int64(42), o.ID)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, "230.00", o.TotalAmount.StringFixed(2))
		require.Len(t, o.Items, 2)

		// 10% off 100.00, snapshotted per unit, times two.
		assert.Equal(t, "90.00", o.Items[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "180.00", o.Items[0].Subtotal.StringFixed(2))
		assert.Equal(t, "50.00", o.Items[1].UnitPrice.StringFixed(2))
		assert.Equal(t, "50.00", o.Items[1].Subtotal.StringFixed(2))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyCart", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT(.|\n)*FROM cart_items c").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"product_id", "name", "brand_name", "quantity", "price", "discount_percent",
			}))
		mock.ExpectRollback()

		_, err = repo.CreateOrderTx(ctx, 7, details)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT(.|\n)*FROM cart_items c").
			WithArgs(int64(7)).
			WillReturnRows(cartLineRows())
		mock.ExpectExec("UPDATE products").
			WithArgs(2, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err = repo.CreateOrderTx(ctx, 7, details)
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

		var se *inventory.StockError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, int64(1), se.ProductID)
		assert.Equal(t, "Aventus", se.ProductName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrderInsertErrorRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT(.|\n)*FROM cart_items c").
			WithArgs(int64(7)).
			WillReturnRows(cartLineRows())
		mock.ExpectExec("UPDATE products").
			WithArgs(2, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products").
			WithArgs(1, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err = repo.CreateOrderTx(ctx, 7, details)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
