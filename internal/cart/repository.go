package cart

import (
	"context"
	"database/sql"
	"errors"

	"scentora-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCartItems(ctx context.Context, userID int64) ([]*CartItem, error)
	GetCartItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error)
	CreateCartItem(ctx context.Context, params CreateCartItemParams) (*CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

type CreateCartItemParams struct {
	UserID    int64
	ProductID int64
	Quantity  int
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetCartItems returns the user's lines joined with catalog data, oldest
// first. A user with no cart yet gets an empty slice, not an error.
func (r *repository) GetCartItems(ctx context.Context, userID int64) ([]*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartItems"),
		zap.Int64("user_id", userID),
	)

	query := `
	SELECT
		c.id,
		c.user_id,
		c.product_id,
		c.quantity,
		c.created_at,
		c.updated_at,

		p.name,
		COALESCE(b.name, 'UNKNOWN'),
		p.price,
		p.discount_percent,
		p.stock,
		p.image_url
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	LEFT JOIN brands b ON b.id = p.brand_id
	WHERE c.user_id = $1
	ORDER BY c.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, ErrFailedGetCartRows
	}
	defer rows.Close()

	items := make([]*CartItem, 0)

	for rows.Next() {
		item := &CartItem{Product: &ProductInfo{}}
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,

			&item.Product.Name,
			&item.Product.BrandName,
			&item.Product.Price,
			&item.Product.DiscountPercent,
			&item.Product.Stock,
			&item.Product.ImageURL,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, ErrFailedGetCartRows
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, ErrFailedGetCartRows
	}

	return items, nil
}

func (r *repository) GetCartItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error) {
	query := `
	SELECT
		id,
		user_id,
		product_id,
		quantity,
		created_at,
		updated_at
	FROM cart_items
	WHERE user_id = $1 AND product_id = $2
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) CreateCartItem(ctx context.Context, params CreateCartItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCartItem"),
		zap.Int64("user_id", params.UserID),
		zap.Int64("product_id", params.ProductID),
	)

	query := `
	INSERT INTO cart_items (
		user_id,
		product_id,
		quantity
	)
	VALUES ($1, $2, $3)
	RETURNING
		id,
		user_id,
		product_id,
		quantity,
		created_at,
		updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.ProductID, params.Quantity).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, ErrFailedCreateCartItem
	}

	log.Info("cart item created", zap.Int64("cart_item_id", item.ID))

	return &item, nil
}

func (r *repository) UpdateCartItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*CartItem, error) {
	query := `
	UPDATE cart_items
	SET quantity = $1,
	    updated_at = NOW()
	WHERE id = $2
	RETURNING
		id,
		user_id,
		product_id,
		quantity,
		created_at,
		updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, quantity, cartItemID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, ErrFailedUpdateCart
	}

	return &item, nil
}

func (r *repository) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return ErrFailedRemoveCart
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ClearCart drops every line the user holds. Clearing an already-empty cart
// is a no-op.
func (r *repository) ClearCart(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
	`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return ErrFailedClearCart
	}

	return nil
}
