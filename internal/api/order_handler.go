package api

import (
	"net/http"
	"strconv"

	"scentora-be/internal/middleware"
	"scentora-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	orderSvc order.Service
}

func NewOrderHandler(orderSvc order.Service) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	limit, page := parsePagination(c)

	orders, err := h.orderSvc.GetUserOrders(c.Request.Context(), userID, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrderDetail(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	o, err := h.orderSvc.GetOrderDetail(c.Request.Context(), userID, orderID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) GetLatestOrder(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	o, err := h.orderSvc.GetLatestUserOrder(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	o, err := h.orderSvc.UpdateStatus(c.Request.Context(), orderID, order.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) GetOrdersByStatus(c *gin.Context) {
	status := order.Status(c.Query("status"))

	orders, err := h.orderSvc.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrdersByWhatsapp(c *gin.Context) {
	fragment := c.Query("number")
	if fragment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number query parameter is required"})
		return
	}

	orders, err := h.orderSvc.GetOrdersByWhatsappNumber(c.Request.Context(), fragment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrdersByMinAmount(c *gin.Context) {
	minAmount, err := decimal.NewFromString(c.Query("min"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min query parameter must be a decimal amount"})
		return
	}

	orders, err := h.orderSvc.GetOrdersByMinAmount(c.Request.Context(), minAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	customers, err := h.orderSvc.TopCustomers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *OrderHandler) BestSellers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	sellers, err := h.orderSvc.BestSellingProducts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": sellers})
}

func (h *OrderHandler) RecentSold(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.orderSvc.RecentSoldItems(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *OrderHandler) TotalSpent(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	total, err := h.orderSvc.UserTotalSpent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_spent": total.StringFixed(2)})
}

func (h *OrderHandler) CanRate(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ok, err := h.orderSvc.HasDeliveredProduct(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"can_rate": ok})
}

func parsePagination(c *gin.Context) (limit, page int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	return limit, page
}
