package product

import (
	"context"
	"database/sql"
	"errors"
)

// Repository is the read-only catalog lookup. Product master data (name,
// brand, price, discount, stock) is owned by the catalog subsystem; the
// checkout core only ever reads it here and decrements stock through the
// inventory ledger.
type Repository interface {
	GetProductByID(ctx context.Context, productID int64) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProductByID(ctx context.Context, productID int64) (*Product, error) {
	query := `
	SELECT
		p.id,
		p.name,
		p.description,
		p.brand_id,
		COALESCE(b.name, 'UNKNOWN'),
		p.price,
		p.discount_percent,
		p.stock,
		p.image_url,
		p.created_at,
		p.updated_at
	FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	WHERE p.id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BrandID,
		&p.BrandName,
		&p.Price,
		&p.DiscountPercent,
		&p.Stock,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
