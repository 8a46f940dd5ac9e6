package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/queue"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	return NewOrderService(repository.NewOrderRepository(db), queueClient), db
}

func createTestOrder(t *testing.T, db *gorm.DB, status string) models.Order {
	t.Helper()
	customerID := uint(7)
	order := models.Order{
		OrderNo:         GenerateOrderNo(time.Now()),
		StoreID:         1,
		CustomerID:      &customerID,
		CustomerName:    "Asha Rao",
		CustomerEmail:   "asha@example.com",
		Currency:        constants.DefaultCurrency,
		Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(1049)),
		Status:          status,
		PaymentStatus:   constants.PaymentStatusPaid,
		RazorpayOrderID: fmt.Sprintf("order_%d", time.Now().UnixNano()),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestUpdateStatusFreeFormTransitions(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusPending)

	for _, status := range []string{
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	} {
		if err := svc.UpdateStatus(order.ID, status, false); err != nil {
			t.Fatalf("update to %s failed: %v", status, err)
		}
	}

	got, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusDelivered {
		t.Fatalf("unexpected status: %s", got.Status)
	}
	if got.DeliveredAt == nil {
		t.Fatal("expected delivered_at to be set")
	}
}

func TestUpdateStatusTerminalGuard(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusCancelled)

	err := svc.UpdateStatus(order.ID, constants.OrderStatusShipped, false)
	if !errors.Is(err, ErrOrderTerminal) {
		t.Fatalf("expected terminal guard, got %v", err)
	}

	// Explicit admin override is allowed.
	if err := svc.UpdateStatus(order.ID, constants.OrderStatusProcessing, true); err != nil {
		t.Fatalf("override update failed: %v", err)
	}
	got, _ := svc.GetByID(order.ID)
	if got.Status != constants.OrderStatusProcessing {
		t.Fatalf("unexpected status after override: %s", got.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusPending)
	if err := svc.UpdateStatus(order.ID, "archived", false); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestDeleteAlwaysRefused(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusCancelled)

	if err := svc.Delete(order.ID); !errors.Is(err, ErrOperationNotAllowed) {
		t.Fatalf("expected operation not allowed, got %v", err)
	}
	if _, err := svc.GetByID(order.ID); err != nil {
		t.Fatalf("order should survive a delete attempt: %v", err)
	}
}

func TestUpdateTracking(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusProcessing)

	if err := svc.UpdateTracking(order.ID, "WB999"); err != nil {
		t.Fatalf("update tracking failed: %v", err)
	}
	got, _ := svc.GetByID(order.ID)
	if got.TrackingNumber != "WB999" {
		t.Fatalf("unexpected tracking number: %s", got.TrackingNumber)
	}

	if err := svc.UpdateTracking(order.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank tracking, got %v", err)
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusDelivered)

	if err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusRefunded); err != nil {
		t.Fatalf("update payment status failed: %v", err)
	}
	got, _ := svc.GetByID(order.ID)
	if got.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("unexpected payment status: %s", got.PaymentStatus)
	}

	if err := svc.UpdatePaymentStatus(order.ID, "chargeback"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestGetOwnedEnforcesOwnership(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, constants.OrderStatusPending)

	if _, err := svc.GetOwned(order.ID, 1, 7); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetOwned(order.ID, 1, 8); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for foreign customer, got %v", err)
	}
}

func TestGenerateOrderNo(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	first := GenerateOrderNo(now)
	second := GenerateOrderNo(now)
	if first == second {
		t.Fatalf("expected unique order numbers, got %s twice", first)
	}
	if len(first) != len("VK-20060102-XXXXXXXX") {
		t.Fatalf("unexpected order number shape: %s", first)
	}
}
