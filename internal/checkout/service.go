package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scentora-be/internal/cart"
	"scentora-be/internal/inventory"
	"scentora-be/internal/logger"
	"scentora-be/internal/notifier"
	"scentora-be/internal/user"

	"go.uber.org/zap"
)

// Service is the checkout orchestrator. A single attempt moves
// Validating -> Committing -> Succeeded, or stops at Validating with no side
// effects at all.
type Service interface {
	Checkout(ctx context.Context, userID int64, details DeliveryDetails) (*Result, error)
}

type service struct {
	repo             Repository
	cartRepo         cart.Repository
	userRepo         user.Repository
	notifier         notifier.Notifier
	businessWhatsapp string
}

func NewService(
	repo Repository,
	cartRepo cart.Repository,
	userRepo user.Repository,
	n notifier.Notifier,
	businessWhatsapp string,
) Service {
	return &service{
		repo:             repo,
		cartRepo:         cartRepo,
		userRepo:         userRepo,
		notifier:         n,
		businessWhatsapp: businessWhatsapp,
	}
}

func (s *service) Checkout(ctx context.Context, userID int64, details DeliveryDetails) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int64("user_id", userID),
	)

	if strings.TrimSpace(details.WhatsappNumber) == "" {
		return nil, ErrMissingWhatsappNumber
	}
	if strings.TrimSpace(details.DeliveryAddress) == "" {
		return nil, ErrMissingDeliveryAddress
	}

	// Validating. Every check here is advisory and produces a precise,
	// actionable error before any commit is attempted.
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	lines, err := s.cartRepo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	for _, line := range lines {
		if line.Product != nil && line.Quantity > line.Product.Stock {
			return nil, &inventory.StockError{
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Requested:   line.Quantity,
			}
		}
	}

	// Committing. The repository re-validates stock with conditional
	// decrements inside one transaction, so whatever Validating saw is
	// irrelevant by now.
	o, err := s.repo.CreateOrderTx(ctx, userID, details)
	if err != nil {
		return nil, err
	}

	// Succeeded.
	message := BuildWhatsAppMessage(o)
	link := BuildWhatsAppLink(s.businessWhatsapp, message)

	// Best-effort confirmation, outside the transaction. A failed send is
	// logged and swallowed; the order already exists.
	go s.sendConfirmation(u, o.ID, BuildEmailBody(o))

	log.Info("checkout succeeded",
		zap.Int64("order_id", o.ID),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)),
	)

	return &Result{
		Order:        o,
		Message:      message,
		WhatsappLink: link,
	}, nil
}

func (s *service) sendConfirmation(u *user.User, orderID int64, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	subject := fmt.Sprintf("Order Confirmation - #%d", orderID)
	if err := s.notifier.Notify(ctx, u.Email, subject, body); err != nil {
		logger.L().Error("failed to send order confirmation",
			zap.Int64("order_id", orderID),
			zap.String("recipient", u.Email),
			zap.Error(err),
		)
		return
	}

	logger.L().Info("order confirmation sent",
		zap.Int64("order_id", orderID),
		zap.String("recipient", u.Email),
	)
}
