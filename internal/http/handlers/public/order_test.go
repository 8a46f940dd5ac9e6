package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/provider"
	"github.com/vastrakart/vastrakart/internal/repository"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:public_orders_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	orderRepo := repository.NewOrderRepository(db)
	container := &provider.Container{
		OrderRepo:    orderRepo,
		OrderService: service.NewOrderService(orderRepo, nil),
	}
	return New(container), db
}

func invokeGetMyOrder(t *testing.T, handler *Handler, customerID uint, orderNo string) response.Response {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("store_id", uint(1))
	c.Set("customer_id", customerID)
	c.Params = gin.Params{{Key: "order_no", Value: orderNo}}
	handler.GetMyOrder(c)

	var envelope response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope failed: %v", err)
	}
	return envelope
}

func createHandlerOrder(t *testing.T, db *gorm.DB, orderNo string, customerID *uint) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       orderNo,
		StoreID:       1,
		CustomerID:    customerID,
		CustomerName:  "Arjun Rao",
		CustomerEmail: "arjun@example.com",
		Currency:      constants.DefaultCurrency,
		Subtotal:      models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(550)),
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusPaid,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestGetMyOrderMissingReturnsNotFoundCode(t *testing.T) {
	handler, _ := setupOrderHandlerTest(t)

	envelope := invokeGetMyOrder(t, handler, 3, "VK-MISSING")
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("status code want %d got %d", response.CodeNotFound, envelope.StatusCode)
	}
	if envelope.Msg != "order not found" {
		t.Fatalf("unexpected msg %q", envelope.Msg)
	}
}

func TestGetMyOrderForeignOrderForbidden(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	owner := uint(7)
	createHandlerOrder(t, db, "VK-7001", &owner)

	envelope := invokeGetMyOrder(t, handler, 8, "VK-7001")
	if envelope.StatusCode != response.CodeForbidden {
		t.Fatalf("status code want %d got %d", response.CodeForbidden, envelope.StatusCode)
	}
}

func TestGetMyOrderReturnsOwnOrder(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	owner := uint(9)
	createHandlerOrder(t, db, "VK-7002", &owner)

	envelope := invokeGetMyOrder(t, handler, owner, "VK-7002")
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("status code want %d got %d (msg %q)", response.CodeOK, envelope.StatusCode, envelope.Msg)
	}
}
