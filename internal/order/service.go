package order

import (
	"context"

	"scentora-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	GetOrderDetail(ctx context.Context, userID, orderID int64, isAdmin bool) (*Order, error)
	GetUserOrders(ctx context.Context, userID int64, limit, page int) ([]*Order, error)
	GetLatestUserOrder(ctx context.Context, userID int64) (*Order, error)
	GetOrdersByStatus(ctx context.Context, status Status) ([]*Order, error)
	GetOrdersByWhatsappNumber(ctx context.Context, fragment string) ([]*Order, error)
	GetOrdersByMinAmount(ctx context.Context, minAmount decimal.Decimal) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, next Status) (*Order, error)

	TopCustomers(ctx context.Context, limit int) ([]*TopCustomer, error)
	BestSellingProducts(ctx context.Context, limit int) ([]*BestSeller, error)
	RecentSoldItems(ctx context.Context, limit int) ([]*OrderItem, error)
	UserTotalSpent(ctx context.Context, userID int64) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	ProductTotalSold(ctx context.Context, productID int64) (int64, error)
	HasDeliveredProduct(ctx context.Context, userID, productID int64) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetOrderDetail returns the order with items. Users only see their own
// orders; admins see everything.
func (s *service) GetOrderDetail(ctx context.Context, userID, orderID int64, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) GetUserOrders(ctx context.Context, userID int64, limit, page int) ([]*Order, error) {
	return s.repo.GetUserOrders(ctx, userID, limit, page)
}

func (s *service) GetLatestUserOrder(ctx context.Context, userID int64) (*Order, error) {
	return s.repo.GetLatestUserOrder(ctx, userID)
}

func (s *service) GetOrdersByStatus(ctx context.Context, status Status) ([]*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.GetOrdersByStatus(ctx, status)
}

func (s *service) GetOrdersByWhatsappNumber(ctx context.Context, fragment string) ([]*Order, error) {
	return s.repo.GetOrdersByWhatsappNumber(ctx, fragment)
}

func (s *service) GetOrdersByMinAmount(ctx context.Context, minAmount decimal.Decimal) ([]*Order, error) {
	return s.repo.GetOrdersByMinAmount(ctx, minAmount)
}

// UpdateStatus advances the order along the legal forward sequence. The
// checkout flow never calls this; it is a separately authorized operation.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, next Status) (*Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, next); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(o.Status)),
		zap.String("to", string(next)),
	)

	o.Status = next
	return o, nil
}

func (s *service) TopCustomers(ctx context.Context, limit int) ([]*TopCustomer, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopCustomers(ctx, limit)
}

func (s *service) BestSellingProducts(ctx context.Context, limit int) ([]*BestSeller, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.BestSellingProducts(ctx, limit)
}

func (s *service) RecentSoldItems(ctx context.Context, limit int) ([]*OrderItem, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.RecentSoldItems(ctx, limit)
}

func (s *service) UserTotalSpent(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.repo.UserTotalSpent(ctx, userID)
}

func (s *service) CountByStatus(ctx context.Context, status Status) (int64, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}
	return s.repo.CountByStatus(ctx, status)
}

func (s *service) ProductTotalSold(ctx context.Context, productID int64) (int64, error) {
	return s.repo.ProductTotalSold(ctx, productID)
}

func (s *service) HasDeliveredProduct(ctx context.Context, userID, productID int64) (bool, error) {
	return s.repo.HasDeliveredProduct(ctx, userID, productID)
}
