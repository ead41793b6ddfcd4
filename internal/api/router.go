package api

import (
	"scentora-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
}

func NewRouter(jwtSecret string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AuthMiddleware(jwtSecret))
	r.Use(middleware.LoggingMiddleware())

	authed := r.Group("/api", middleware.RequireAuth(), middleware.RateLimitMiddleware(false))
	{
		cartGroup := authed.Group("/cart")
		{
			cartGroup.GET("", h.Cart.GetCart)
			cartGroup.POST("/items", h.Cart.AddToCart)
			cartGroup.PUT("/items/:productId", h.Cart.UpdateQuantity)
			cartGroup.DELETE("/items/:productId", h.Cart.RemoveFromCart)
			cartGroup.DELETE("", h.Cart.ClearCart)
		}

		authed.POST("/checkout", middleware.RateLimitMiddleware(true), h.Checkout.Checkout)

		orderGroup := authed.Group("/orders")
		{
			orderGroup.GET("", h.Order.GetOrders)
			orderGroup.GET("/latest", h.Order.GetLatestOrder)
			orderGroup.GET("/total-spent", h.Order.TotalSpent)
			orderGroup.GET("/:orderId", h.Order.GetOrderDetail)
			orderGroup.GET("/can-rate/:productId", h.Order.CanRate)
		}

		admin := authed.Group("/admin", middleware.RequireAdmin())
		{
			admin.PUT("/orders/:orderId/status", h.Order.UpdateStatus)
			admin.GET("/orders/by-status", h.Order.GetOrdersByStatus)
			admin.GET("/orders/by-whatsapp", h.Order.GetOrdersByWhatsapp)
			admin.GET("/orders/by-min-amount", h.Order.GetOrdersByMinAmount)
			admin.GET("/reports/top-customers", h.Order.TopCustomers)
			admin.GET("/reports/best-sellers", h.Order.BestSellers)
			admin.GET("/reports/recent-sold", h.Order.RecentSold)
		}
	}

	return r
}
