package order

import (
	"context"
	"database/sql"
	"errors"

	"scentora-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetOrderByID(ctx context.Context, orderID int64) (*Order, error)
	GetUserOrders(ctx context.Context, userID int64, limit, page int) ([]*Order, error)
	GetLatestUserOrder(ctx context.Context, userID int64) (*Order, error)
	GetOrdersByStatus(ctx context.Context, status Status) ([]*Order, error)
	GetOrdersByWhatsappNumber(ctx context.Context, fragment string) ([]*Order, error)
	GetOrdersByMinAmount(ctx context.Context, minAmount decimal.Decimal) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, current, next Status) error

	TopCustomers(ctx context.Context, limit int) ([]*TopCustomer, error)
	BestSellingProducts(ctx context.Context, limit int) ([]*BestSeller, error)
	RecentSoldItems(ctx context.Context, limit int) ([]*OrderItem, error)
	UserTotalSpent(ctx context.Context, userID int64) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	ProductTotalSold(ctx context.Context, productID int64) (int64, error)
	HasDeliveredProduct(ctx context.Context, userID, productID int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id,
	user_id,
	total_amount,
	status,
	whatsapp_number,
	delivery_address,
	COALESCE(customer_notes, ''),
	created_at,
	updated_at
`

func scanOrder(row interface{ Scan(dest ...any) error }, o *Order) error {
	return row.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.Status,
		&o.WhatsappNumber,
		&o.DeliveryAddress,
		&o.CustomerNotes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

func (r *repository) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.getOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repository) getOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, brand_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.BrandName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *repository) GetUserOrders(ctx context.Context, userID int64, limit, page int) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetUserOrders"),
		zap.Int64("user_id", userID),
	)

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) GetLatestUserOrder(ctx context.Context, userID int64) (*Order, error) {
	var o Order
	err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetOrdersByStatus(ctx context.Context, status Status) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) GetOrdersByWhatsappNumber(ctx context.Context, fragment string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE whatsapp_number LIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) GetOrdersByMinAmount(ctx context.Context, minAmount decimal.Decimal) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE total_amount > $1
		ORDER BY total_amount DESC
	`, minAmount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	orders := make([]*Order, 0)
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// UpdateStatus persists the transition current -> next. The status guard in
// the WHERE clause makes concurrent updates lose cleanly instead of skipping
// a state.
func (r *repository) UpdateStatus(ctx context.Context, orderID int64, current, next Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, next, orderID, current)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConcurrentlyMoved
	}

	return nil
}

func (r *repository) TopCustomers(ctx context.Context, limit int) ([]*TopCustomer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.user_id, u.name, COUNT(o.id), COALESCE(SUM(o.total_amount), 0)
		FROM orders o
		JOIN users u ON u.id = o.user_id
		GROUP BY o.user_id, u.name
		ORDER BY SUM(o.total_amount) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*TopCustomer
	for rows.Next() {
		var c TopCustomer
		if err := rows.Scan(&c.UserID, &c.UserName, &c.OrderCount, &c.TotalSpent); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

func (r *repository) BestSellingProducts(ctx context.Context, limit int) ([]*BestSeller, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.product_name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		GROUP BY oi.product_id, oi.product_name
		ORDER BY total_sold DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []*BestSeller
	for rows.Next() {
		var b BestSeller
		if err := rows.Scan(&b.ProductID, &b.ProductName, &b.TotalSold); err != nil {
			return nil, err
		}
		sellers = append(sellers, &b)
	}
	return sellers, rows.Err()
}

func (r *repository) RecentSoldItems(ctx context.Context, limit int) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.brand_name,
		       oi.quantity, oi.unit_price, oi.subtotal
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		ORDER BY o.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.BrandName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *repository) UserTotalSpent(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *repository) ProductTotalSold(ctx context.Context, productID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM order_items
		WHERE product_id = $1
	`, productID).Scan(&total)
	return total, err
}

// HasDeliveredProduct reports whether the user holds a DELIVERED order that
// contains the product. Downstream rating capability is gated on this.
func (r *repository) HasDeliveredProduct(ctx context.Context, userID, productID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.user_id = $1
			  AND oi.product_id = $2
			  AND o.status = $3
		)
	`, userID, productID, StatusDelivered).Scan(&ok)
	return ok, err
}
