package inventory

import (
	"context"
	"database/sql"

	"scentora-be/internal/product"

	"github.com/shopspring/decimal"
)

// Ledger owns the sellable stock count per product and the discounted-price
// computation used for cart display. The price it reports is advisory: the
// checkout commit re-reads catalog data inside its own transaction.
type Ledger interface {
	AvailableStock(ctx context.Context, productID int64) (int, error)
	DiscountedPrice(ctx context.Context, productID int64) (decimal.Decimal, error)
}

type ledger struct {
	productRepo product.Repository
}

func NewLedger(productRepo product.Repository) Ledger {
	return &ledger{productRepo: productRepo}
}

func (l *ledger) AvailableStock(ctx context.Context, productID int64) (int, error) {
	p, err := l.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

func (l *ledger) DiscountedPrice(ctx context.Context, productID int64) (decimal.Decimal, error) {
	p, err := l.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return p.DiscountedPrice(), nil
}

// DBTX is satisfied by *sql.DB and *sql.Tx. DecrementStock must run on the
// checkout transaction so the conditional update and the order insert commit
// or roll back together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DecrementStock reduces a product's stock by qty. The WHERE guard makes the
// decrement conditional: when the row no longer holds enough stock the update
// touches nothing and a *StockError is returned, which aborts the enclosing
// transaction. Two concurrent checkouts of the last unit therefore resolve to
// exactly one success.
func DecrementStock(ctx context.Context, ex DBTX, productID int64, qty int) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing product from a lost stock race.
		var exists bool
		row := ex.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID)
		if scanErr := row.Scan(&exists); scanErr != nil {
			return scanErr
		}
		if !exists {
			return product.ErrProductNotFound
		}
		return &StockError{ProductID: productID, Requested: qty}
	}

	return nil
}
