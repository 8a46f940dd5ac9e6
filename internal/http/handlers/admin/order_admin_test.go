package admin

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

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:admin_handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.CancelRequest{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	orderRepo := repository.NewOrderRepository(db)
	requestRepo := repository.NewCancelRequestRepository(db)
	container := &provider.Container{
		OrderRepo:            orderRepo,
		CancelRequestRepo:    requestRepo,
		OrderService:         service.NewOrderService(orderRepo, nil),
		CancelRequestService: service.NewCancelRequestService(db, requestRepo, orderRepo, nil, 7),
	}
	return New(container), db
}

func invokeWithID(t *testing.T, handler gin.HandlerFunc, id string) response.Response {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	handler(c)

	var envelope response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope failed: %v", err)
	}
	return envelope
}

func TestGetOrderMissingReturnsNotFoundCode(t *testing.T) {
	handler, _ := setupAdminHandlerTest(t)

	envelope := invokeWithID(t, handler.GetOrder, "999")
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("status code want %d got %d", response.CodeNotFound, envelope.StatusCode)
	}
	if envelope.Msg != "order not found" {
		t.Fatalf("unexpected msg %q", envelope.Msg)
	}
}

func TestGetOrderReturnsExistingOrder(t *testing.T) {
	handler, db := setupAdminHandlerTest(t)
	order := &models.Order{
		OrderNo:       "VK-9001",
		StoreID:       1,
		CustomerName:  "Meera Iyer",
		CustomerEmail: "meera@example.com",
		Currency:      constants.DefaultCurrency,
		Subtotal:      models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(1080)),
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusPaid,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	envelope := invokeWithID(t, handler.GetOrder, fmt.Sprintf("%d", order.ID))
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("status code want %d got %d (msg %q)", response.CodeOK, envelope.StatusCode, envelope.Msg)
	}
}

func TestGetCancelRequestMissingReturnsNotFoundCode(t *testing.T) {
	handler, _ := setupAdminHandlerTest(t)

	envelope := invokeWithID(t, handler.GetCancelRequest, "999")
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("status code want %d got %d", response.CodeNotFound, envelope.StatusCode)
	}
	if envelope.Msg != "request not found" {
		t.Fatalf("unexpected msg %q", envelope.Msg)
	}
}
