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

func setupCancelRequestServiceTest(t *testing.T) (*CancelRequestService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cancel_request_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.CancelRequest{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	svc := NewCancelRequestService(
		db,
		repository.NewCancelRequestRepository(db),
		repository.NewOrderRepository(db),
		queueClient,
		7,
	)
	return svc, db
}

func createCancellableOrder(t *testing.T, db *gorm.DB, status string, customerID uint) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:         GenerateOrderNo(time.Now()),
		StoreID:         1,
		CustomerID:      &customerID,
		CustomerName:    "Meera Iyer",
		CustomerEmail:   "meera@example.com",
		ShippingState:   "Karnataka",
		Currency:        constants.DefaultCurrency,
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(1499)),
		Status:          status,
		PaymentStatus:   constants.PaymentStatusPaid,
		RazorpayOrderID: fmt.Sprintf("order_%d", time.Now().UnixNano()),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:     order.ID,
		ProductID:   1,
		ProductName: "silk saree",
		Quantity:    1,
		UnitPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(1499)),
		TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(1499)),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return order
}

func TestCreateCancelRequestMovesOrderToCancelled(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusProcessing, 7)

	request, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
		Reason:     "ordered wrong size",
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if request.Status != constants.CancelRequestStatusPending {
		t.Fatalf("unexpected request status: %s", request.Status)
	}
	if request.PreviousStatus != constants.OrderStatusProcessing {
		t.Fatalf("unexpected previous status: %s", request.PreviousStatus)
	}

	var got models.Order
	if err := db.First(&got, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected order cancelled, got %s", got.Status)
	}
	if got.CancelledAt == nil {
		t.Fatal("expected cancelled_at set")
	}
}

func TestCreateCancelRequestSnapshotsOrder(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusPending, 7)

	request, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if request.CustomerEmail != "meera@example.com" {
		t.Fatalf("unexpected snapshot email: %s", request.CustomerEmail)
	}
	if request.TotalAmount.String() != "1499.00" {
		t.Fatalf("unexpected snapshot total: %s", request.TotalAmount)
	}
	items, ok := request.ItemsJSON["items"].([]map[string]interface{})
	if !ok || len(items) != 1 {
		// After a DB round trip the slice type loosens; this path checks the
		// freshly built value.
		t.Fatalf("unexpected items snapshot: %+v", request.ItemsJSON)
	}
	if items[0]["product_name"] != "silk saree" {
		t.Fatalf("unexpected snapshot item: %+v", items[0])
	}
}

func TestCreateCancelRequestInvalidState(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusShipped, 7)

	_, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	})
	if !errors.Is(err, ErrCancelStateInvalid) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestCreateCancelRequestOwnership(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusPending, 7)

	_, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 8,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ownership error, got %v", err)
	}
}

func TestCreateDuplicateRequestBlocked(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusDelivered, 7)
	deliveredAt := time.Now().Add(-24 * time.Hour)
	db.Model(&models.Order{}).Where("id = ?", order.ID).Update("delivered_at", deliveredAt)

	input := CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeRefund,
		Reason:     "fabric damaged",
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrCancelRequestExists) {
		t.Fatalf("expected duplicate guard, got %v", err)
	}
}

func TestRejectedRequestAllowsResubmission(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusProcessing, 7)

	request, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if _, err := svc.Review(ReviewCancelRequestInput{RequestID: request.ID, Decision: constants.CancelRequestStatusRejected}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	// After rejection the order is back in processing; a new request may be filed.
	if _, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	}); err != nil {
		t.Fatalf("resubmission after rejection failed: %v", err)
	}
}

func TestRefundWindow(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)

	inside := createCancellableOrder(t, db, constants.OrderStatusDelivered, 7)
	deliveredRecently := time.Now().Add(-6 * 24 * time.Hour)
	db.Model(&models.Order{}).Where("id = ?", inside.ID).Update("delivered_at", deliveredRecently)

	if _, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    inside.OrderNo,
		Type:       constants.CancelRequestTypeRefund,
	}); err != nil {
		t.Fatalf("in-window refund request failed: %v", err)
	}

	outside := createCancellableOrder(t, db, constants.OrderStatusDelivered, 7)
	deliveredLongAgo := time.Now().Add(-8 * 24 * time.Hour)
	db.Model(&models.Order{}).Where("id = ?", outside.ID).Update("delivered_at", deliveredLongAgo)

	_, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    outside.OrderNo,
		Type:       constants.CancelRequestTypeRefund,
	})
	if !errors.Is(err, ErrRefundWindowExpired) {
		t.Fatalf("expected refund window expired, got %v", err)
	}
}

func TestRefundWindowFallsBackToUpdatedAt(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusDelivered, 7)
	stale := time.Now().Add(-9 * 24 * time.Hour)
	db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"delivered_at": nil,
		"updated_at":   stale,
	})

	_, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeRefund,
	})
	if !errors.Is(err, ErrRefundWindowExpired) {
		t.Fatalf("expected refund window expired via updated_at fallback, got %v", err)
	}
}

func TestRefundRequiresDeliveredOrder(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusShipped, 7)

	_, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeRefund,
	})
	if !errors.Is(err, ErrRefundStateInvalid) {
		t.Fatalf("expected refund state error, got %v", err)
	}
}

func TestApproveRefundMarksOrderReturned(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusDelivered, 7)
	deliveredAt := time.Now().Add(-24 * time.Hour)
	db.Model(&models.Order{}).Where("id = ?", order.ID).Update("delivered_at", deliveredAt)

	request, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeRefund,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	// Refund requests leave the order untouched until review.
	var beforeReview models.Order
	db.First(&beforeReview, order.ID)
	if beforeReview.Status != constants.OrderStatusDelivered {
		t.Fatalf("refund request must not mutate order before review, got %s", beforeReview.Status)
	}

	reviewed, err := svc.Review(ReviewCancelRequestInput{
		RequestID: request.ID,
		Decision:  constants.CancelRequestStatusApproved,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if reviewed.ReviewedAt == nil {
		t.Fatal("expected reviewed_at set")
	}

	var got models.Order
	db.First(&got, order.ID)
	if got.Status != constants.OrderStatusReturned {
		t.Fatalf("expected order returned, got %s", got.Status)
	}
	if got.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected payment refunded, got %s", got.PaymentStatus)
	}
}

func TestRejectCancelRestoresPreviousStatus(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusProcessing, 7)

	request, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	if _, err := svc.Review(ReviewCancelRequestInput{
		RequestID: request.ID,
		Decision:  constants.CancelRequestStatusRejected,
	}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	var got models.Order
	db.First(&got, order.ID)
	if got.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected restored status processing, got %s", got.Status)
	}
	if got.CancelledAt != nil {
		t.Fatal("expected cancelled_at cleared after rejection")
	}
}

func TestReviewIsTerminal(t *testing.T) {
	svc, db := setupCancelRequestServiceTest(t)
	order := createCancellableOrder(t, db, constants.OrderStatusPending, 7)

	request, err := svc.Create(CreateCancelRequestInput{
		StoreID:    1,
		CustomerID: 7,
		OrderNo:    order.OrderNo,
		Type:       constants.CancelRequestTypeCancel,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if _, err := svc.Review(ReviewCancelRequestInput{RequestID: request.ID, Decision: constants.CancelRequestStatusApproved}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.Review(ReviewCancelRequestInput{RequestID: request.ID, Decision: constants.CancelRequestStatusRejected}); !errors.Is(err, ErrCancelRequestReviewed) {
		t.Fatalf("expected already reviewed error, got %v", err)
	}
}

func TestReviewRejectsUnknownDecision(t *testing.T) {
	svc, _ := setupCancelRequestServiceTest(t)
	if _, err := svc.Review(ReviewCancelRequestInput{RequestID: 1, Decision: "maybe"}); !errors.Is(err, ErrReviewDecisionInvalid) {
		t.Fatalf("expected decision invalid error, got %v", err)
	}
}
