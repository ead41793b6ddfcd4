package checkout

import (
	"context"
	"database/sql"
	"errors"

	"scentora-be/internal/inventory"
	"scentora-be/internal/logger"
	"scentora-be/internal/order"
	"scentora-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx converts the user's cart into an order in one atomic
	// unit: snapshot prices, decrement stock, insert order and items,
	// clear the cart. Any failure rolls every part back.
	CreateOrderTx(ctx context.Context, userID int64, details DeliveryDetails) (*order.Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// checkoutLine is a cart line re-read inside the commit transaction. Prices
// seen during the advisory Validating phase are never trusted here.
type checkoutLine struct {
	productID       int64
	productName     string
	brandName       string
	quantity        int
	price           decimal.Decimal
	discountPercent int
}

func (r *repository) CreateOrderTx(ctx context.Context, userID int64, details DeliveryDetails) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Int64("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	lines, err := r.readCartLines(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Snapshot each line at the price read inside this transaction. Unit
	// prices are rounded before the subtotals are summed so the total does
	// not depend on summation order.
	items := make([]order.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		p := product.Product{Price: line.price, DiscountPercent: line.discountPercent}
		unit := p.DiscountedPrice()
		subtotal := unit.Mul(decimal.NewFromInt(int64(line.quantity)))

		items = append(items, order.OrderItem{
			ProductID:   line.productID,
			ProductName: line.productName,
			BrandName:   line.brandName,
			Quantity:    line.quantity,
			UnitPrice:   unit,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	// Authoritative stock check: the conditional decrement. Losing the race
	// here aborts the whole transaction.
	for i, line := range lines {
		if err := inventory.DecrementStock(ctx, tx, line.productID, line.quantity); err != nil {
			var se *inventory.StockError
			if errors.As(err, &se) && se.ProductName == "" {
				se.ProductName = line.productName
			}
			log.Warn("stock decrement failed",
				zap.Int64("product_id", line.productID),
				zap.Int("line_index", i),
				zap.Error(err),
			)
			return nil, err
		}
	}

	o := &order.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          order.StatusPending,
		WhatsappNumber:  details.WhatsappNumber,
		DeliveryAddress: details.DeliveryAddress,
		CustomerNotes:   details.CustomerNotes,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, total_amount, status,
			whatsapp_number, delivery_address, customer_notes
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		o.UserID,
		o.TotalAmount,
		o.Status,
		o.WhatsappNumber,
		o.DeliveryAddress,
		nullableText(o.CustomerNotes),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for i := range items {
		items[i].OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, brand_name,
				quantity, unit_price, subtotal
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			items[i].OrderID,
			items[i].ProductID,
			items[i].ProductName,
			items[i].BrandName,
			items[i].Quantity,
			items[i].UnitPrice,
			items[i].Subtotal,
		).Scan(&items[i].ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	o.Items = items

	log.Info("checkout transaction committed",
		zap.Int64("order_id", o.ID),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)),
		zap.Int("item_count", len(items)),
	)

	return o, nil
}

func (r *repository) readCartLines(ctx context.Context, tx *sql.Tx, userID int64) ([]checkoutLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT
			c.product_id,
			p.name,
			COALESCE(b.name, 'UNKNOWN'),
			c.quantity,
			p.price,
			p.discount_percent
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(
			&line.productID,
			&line.productName,
			&line.brandName,
			&line.quantity,
			&line.price,
			&line.discountPercent,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
