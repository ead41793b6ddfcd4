package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *ProductInfo `json:"product,omitempty"`
}

// ProductInfo is the joined catalog view attached to a cart line for
// display. Prices here are advisory; the checkout commit re-reads them.
type ProductInfo struct {
	Name            string          `json:"name"`
	BrandName       string          `json:"brand_name"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Stock           int             `json:"stock"`
	ImageURL        *string         `json:"image_url"`
}

// Subtotal is quantity times the current discounted price, for cart display.
func (c *CartItem) Subtotal() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.DiscountedPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
