package api

import (
	"net/http"

	"scentora-be/internal/checkout"
	"scentora-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutSvc checkout.Service
}

func NewCheckoutHandler(checkoutSvc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

type checkoutRequest struct {
	WhatsappNumber  string `json:"whatsapp_number" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	CustomerNotes   string `json:"customer_notes"`
}

type checkoutItemResponse struct {
	ProductName string `json:"product_name"`
	BrandName   string `json:"brand_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type checkoutResponse struct {
	Message      string                 `json:"message"`
	OrderID      int64                  `json:"order_id"`
	TotalAmount  string                 `json:"total_amount"`
	Status       string                 `json:"status"`
	Items        []checkoutItemResponse `json:"items"`
	WhatsappLink string                 `json:"whatsapp_link"`
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := h.checkoutSvc.Checkout(c.Request.Context(), userID, checkout.DeliveryDetails{
		WhatsappNumber:  req.WhatsappNumber,
		DeliveryAddress: req.DeliveryAddress,
		CustomerNotes:   req.CustomerNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]checkoutItemResponse, 0, len(result.Order.Items))
	for _, item := range result.Order.Items {
		items = append(items, checkoutItemResponse{
			ProductName: item.ProductName,
			BrandName:   item.BrandName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		})
	}

	c.JSON(http.StatusCreated, checkoutResponse{
		Message:      "Order created successfully",
		OrderID:      result.Order.ID,
		TotalAmount:  result.Order.TotalAmount.StringFixed(2),
		Status:       string(result.Order.Status),
		Items:        items,
		WhatsappLink: result.WhatsappLink,
	})
}
