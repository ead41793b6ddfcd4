package api

import (
	"errors"
	"net/http"

	"scentora-be/internal/cart"
	"scentora-be/internal/checkout"
	"scentora-be/internal/inventory"
	"scentora-be/internal/logger"
	"scentora-be/internal/order"
	"scentora-be/internal/product"
	"scentora-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the domain error taxonomy onto HTTP status codes. All of
// these are expected, user-correctable failures; anything unmatched is a
// transient 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})

	case errors.Is(err, checkout.ErrMissingWhatsappNumber),
		errors.Is(err, checkout.ErrMissingDeliveryAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, inventory.ErrInsufficientStock):
		var se *inventory.StockError
		resp := gin.H{"error": "Insufficient stock"}
		if errors.As(err, &se) {
			resp["product_id"] = se.ProductID
			if se.ProductName != "" {
				resp["product_name"] = se.ProductName
			}
		}
		c.JSON(http.StatusConflict, resp)

	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid quantity"})

	case errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, order.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, checkout.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, order.ErrStatusConcurrentlyMoved):
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed concurrently, reload and retry"})

	case errors.Is(err, order.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})

	default:
		logger.FromCtx(c.Request.Context()).Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
