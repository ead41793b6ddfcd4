package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scentora-be/internal/middleware"
	"scentora-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, userID, orderID int64, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetUserOrders(ctx context.Context, userID int64, limit, page int) ([]*order.Order, error) {
	args := m.Called(ctx, userID, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetLatestUserOrder(ctx context.Context, userID int64) (*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrdersByWhatsappNumber(ctx context.Context, fragment string) ([]*order.Order, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrdersByMinAmount(ctx context.Context, minAmount decimal.Decimal) ([]*order.Order, error) {
	args := m.Called(ctx, minAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID int64, next order.Status) (*order.Order, error) {
	args := m.Called(ctx, orderID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) TopCustomers(ctx context.Context, limit int) ([]*order.TopCustomer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.TopCustomer), args.Error(1)
}

func (m *MockOrderService) BestSellingProducts(ctx context.Context, limit int) ([]*order.BestSeller, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.BestSeller), args.Error(1)
}

func (m *MockOrderService) RecentSoldItems(ctx context.Context, limit int) ([]*order.OrderItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.OrderItem), args.Error(1)
}

func (m *MockOrderService) UserTotalSpent(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderService) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderService) ProductTotalSold(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderService) HasDeliveredProduct(ctx context.Context, userID, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func orderTestRouter(svc order.Service, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, int64(7))
		if isAdmin {
			c.Set(middleware.UserRoleKey, "ADMIN")
		}
		c.Next()
	})

	h := NewOrderHandler(svc)
	r.GET("/api/orders/total-spent", h.TotalSpent)
	r.GET("/api/orders/can-rate/:productId", h.CanRate)
	r.GET("/api/orders/:orderId", h.GetOrderDetail)
	r.PUT("/api/admin/orders/:orderId/status", h.UpdateStatus)
	return r
}

func TestOrderHandler_GetOrderDetail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		r := orderTestRouter(svc, false)

		svc.On("GetOrderDetail", mock.Anything, int64(7), int64(42), false).
			Return(&order.Order{ID: 42, UserID: 7, Status: order.StatusPending}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":42`)
	})

	t.Run("ForeignOrder", func(t *testing.T) {
		svc := new(MockOrderService)
		r := orderTestRouter(svc, false)

		svc.On("GetOrderDetail", mock.Anything, int64(7), int64(42), false).
			Return(nil, order.ErrUnauthorized)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/42", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		svc := new(MockOrderService)
		r := orderTestRouter(svc, false)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		r := orderTestRouter(svc, true)

		svc.On("UpdateStatus", mock.Anything, int64(42), order.StatusProcessing).
			Return(&order.Order{ID: 42, Status: order.StatusProcessing}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/42/status",
			strings.NewReader(`{"status":"PROCESSING"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"PROCESSING"`)
	})

	t.Run("LostConcurrentUpdate", func(t *testing.T) {
		svc := new(MockOrderService)
		r := orderTestRouter(svc, true)

		svc.On("UpdateStatus", mock.Anything, int64(42), order.StatusProcessing).
			Return(nil, order.ErrStatusConcurrentlyMoved)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/42/status",
			strings.NewReader(`{"status":"PROCESSING"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		svc := new(MockOrderService)
		r := orderTestRouter(svc, true)

		svc.On("UpdateStatus", mock.Anything, int64(42), order.StatusDelivered).
			Return(nil, order.ErrInvalidStatusTransition)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/42/status",
			strings.NewReader(`{"status":"DELIVERED"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestOrderHandler_TotalSpent(t *testing.T) {
	svc := new(MockOrderService)
	r := orderTestRouter(svc, false)

	svc.On("UserTotalSpent", mock.Anything, int64(7)).
		Return(decimal.RequireFromString("230.00"), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/total-spent", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_spent":"230.00"`)
}

func TestOrderHandler_CanRate(t *testing.T) {
	svc := new(MockOrderService)
	r := orderTestRouter(svc, false)

	svc.On("HasDeliveredProduct", mock.Anything, int64(7), int64(3)).
		Return(true, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/can-rate/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"can_rate":true`)
}
