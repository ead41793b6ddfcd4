package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BrandID         int64           `json:"brand_id"`
	BrandName       string          `json:"brand_name"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discount_percent"`
	Stock           int             `json:"stock"`
	ImageURL        *string         `json:"image_url"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// DiscountedPrice is the catalog price after the stored discount percent,
// rounded half-up to 2 fractional digits. A zero discount returns the
// price unchanged.
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.DiscountPercent == 0 {
		return p.Price
	}

	factor := hundred.Sub(decimal.NewFromInt(int64(p.DiscountPercent)))
	return p.Price.Mul(factor).Div(hundred).Round(2)
}
