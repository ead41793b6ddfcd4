package cart

import (
	"context"

	"scentora-be/internal/inventory"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*CartItem, error)
	GetCart(ctx context.Context, userID int64) ([]*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) (*CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

type service struct {
	repo   Repository
	ledger inventory.Ledger
}

func NewService(repo Repository, ledger inventory.Ledger) Service {
	return &service{repo: repo, ledger: ledger}
}

// AddToCart puts a product in the user's cart. A line already holding the
// product gets its quantity summed rather than duplicated; the merged total
// is re-validated against current stock.
func (s *service) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	stock, err := s.ledger.AvailableStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCartItemByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	finalQty := quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > stock {
		return nil, ErrInvalidQuantity
	}

	if existing == nil {
		return s.repo.CreateCartItem(ctx, CreateCartItemParams{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	return s.repo.UpdateCartItemQuantity(ctx, existing.ID, finalQty)
}

// GetCart returns the user's lines with the ledger's current display price
// attached. That price is advisory; checkout re-reads it inside its own
// transaction.
func (s *service) GetCart(ctx context.Context, userID int64) ([]*CartItem, error) {
	items, err := s.repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		price, err := s.ledger.DiscountedPrice(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		item.Product.DiscountedPrice = price
	}

	return items, nil
}

// UpdateQuantity replaces the quantity on an existing line.
func (s *service) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	existing, err := s.repo.GetCartItemByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}

	stock, err := s.ledger.AvailableStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > stock {
		return nil, ErrInvalidQuantity
	}

	return s.repo.UpdateCartItemQuantity(ctx, existing.ID, quantity)
}

func (s *service) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	return s.repo.RemoveFromCart(ctx, userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID int64) error {
	return s.repo.ClearCart(ctx, userID)
}
