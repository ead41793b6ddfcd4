package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderTestColumns = []string{
	"id", "user_id", "total_amount", "status",
	"whatsapp_number", "delivery_address", "customer_notes",
	"created_at", "updated_at",
}

func orderRow() *sqlmock.Rows {
	return sqlmock.NewRows(orderTestColumns).
		AddRow(1, 1, "230.00", "PENDING", "994501112233", "Baku", "", time.Now(), time.Now())
}

func TestRepository_GetOrderByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	itemColumns := []string{
		"id", "order_id", "product_id", "product_name", "brand_name",
		"quantity", "unit_price", "subtotal",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM orders WHERE id").
			WithArgs(int64(1)).
			WillReturnRows(orderRow())
		mock.ExpectQuery("SELECT(.|\n)*FROM order_items").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(1, 1, 10, "Aventus", "Creed", 2, "90.00", "180.00").
				AddRow(2, 1, 11, "Sauvage", "Dior", 1, "50.00", "50.00"))

		o, err := repo.GetOrderByID(context.Background(), 1)
		assert.NoError(t, err)
		require.NotNil(t, o)
		require.Len(t, o.Items, 2)
		assert.Equal(t, "230.00", o.TotalAmount.StringFixed(2))

		sum := decimal.Zero
		for _, item := range o.Items {
			sum = sum.Add(item.Subtotal)
		}
		assert.True(t, sum.Equal(o.TotalAmount))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM orders WHERE id").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(orderTestColumns))

		_, err := repo.GetOrderByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusProcessing, int64(1), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 1, StatusPending, StatusProcessing)
		assert.NoError(t, err)
	})

	t.Run("GuardLost", func(t *testing.T) {
		// Another request moved the status first; the WHERE guard matches
		// nothing.
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusProcessing, int64(1), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 1, StatusPending, StatusProcessing)
		assert.ErrorIs(t, err, ErrStatusConcurrentlyMoved)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WillReturnError(errors.New("db error"))

		err := repo.UpdateStatus(context.Background(), 1, StatusPending, StatusProcessing)
		assert.Error(t, err)
	})
}

func TestRepository_GetUserOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM orders(.|\n)*ORDER BY created_at DESC").
			WithArgs(int64(1), 20, 0).
			WillReturnRows(orderRow())

		orders, err := repo.GetUserOrders(context.Background(), 1, 0, 0)
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("ClampsLimit", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM orders").
			WithArgs(int64(1), 100, 100).
			WillReturnRows(sqlmock.NewRows(orderTestColumns))

		orders, err := repo.GetUserOrders(context.Background(), 1, 500, 2)
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestRepository_Reporting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("TopCustomers", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM orders o(.|\n)*GROUP BY").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "count", "sum"}).
				AddRow(1, "Ayan", 4, "920.00").
				AddRow(2, "Leyla", 2, "310.50"))

		customers, err := repo.TopCustomers(context.Background(), 3)
		assert.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "Ayan", customers[0].UserName)
		assert.Equal(t, "920.00", customers[0].TotalSpent.StringFixed(2))
	})

	t.Run("BestSellingProducts", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM order_items oi(.|\n)*GROUP BY").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "total_sold"}).
				AddRow(10, "Aventus", 42))

		sellers, err := repo.BestSellingProducts(context.Background(), 5)
		assert.NoError(t, err)
		require.Len(t, sellers, 1)
		assert.Equal(t, int64(42), sellers[0].TotalSold)
	})

	t.Run("UserTotalSpent", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("920.00"))

		total, err := repo.UserTotalSpent(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "920.00", total.StringFixed(2))
	})

	t.Run("CountByStatus", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs(StatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByStatus(context.Background(), StatusPending)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("HasDeliveredProduct", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(1), int64(10), StatusDelivered).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := repo.HasDeliveredProduct(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}
