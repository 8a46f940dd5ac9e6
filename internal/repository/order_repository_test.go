package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createRepoOrder(t *testing.T, repo *GormOrderRepository, orderNo string, storeID uint, customerID *uint, email string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		StoreID:         storeID,
		CustomerID:      customerID,
		CustomerName:    "Meera Iyer",
		CustomerEmail:   email,
		Currency:        constants.DefaultCurrency,
		Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(1180)),
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPaid,
		RazorpayOrderID: "order_" + orderNo,
	}
	items := []models.OrderItem{
		{
			ProductID:   1,
			ProductName: "Cotton Kurta",
			UnitPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			Quantity:    2,
			GSTPercent:  models.NewMoneyFromDecimal(decimal.NewFromInt(18)),
			TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(1180)),
		},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateLinksItems(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	customerID := uint(3)
	order := createRepoOrder(t, repo, "VK-1001", 1, &customerID, "meera@example.com")

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}
	if len(got.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(got.Items))
	}
	if got.Items[0].OrderID != order.ID {
		t.Fatalf("item order id want %d got %d", order.ID, got.Items[0].OrderID)
	}
}

func TestOrderRepositoryGetByOrderNoScopedToStore(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createRepoOrder(t, repo, "VK-2001", 1, nil, "guest@example.com")

	got, err := repo.GetByOrderNo(1, " VK-2001 ")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}

	other, err := repo.GetByOrderNo(2, "VK-2001")
	if err != nil {
		t.Fatalf("cross store lookup failed: %v", err)
	}
	if other != nil {
		t.Fatalf("expected nil for other store, got order %d", other.ID)
	}
}

func TestOrderRepositoryGetOwnedRejectsOtherCustomer(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	owner := uint(5)
	order := createRepoOrder(t, repo, "VK-3001", 1, &owner, "owner@example.com")

	got, err := repo.GetOwned(order.ID, 1, owner)
	if err != nil {
		t.Fatalf("get owned failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected order for owner, got nil")
	}

	stranger, err := repo.GetOwned(order.ID, 1, 99)
	if err != nil {
		t.Fatalf("get owned stranger failed: %v", err)
	}
	if stranger != nil {
		t.Fatal("expected nil for non-owner")
	}
}

func TestOrderRepositoryListFilters(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	createRepoOrder(t, repo, "VK-4001", 1, nil, "a@example.com")
	shipped := createRepoOrder(t, repo, "VK-4002", 1, nil, "b@example.com")
	createRepoOrder(t, repo, "VK-4003", 2, nil, "a@example.com")

	if err := db.Model(&models.Order{}).Where("id = ?", shipped.ID).
		Update("status", constants.OrderStatusShipped).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{StoreID: 1, Status: constants.OrderStatusShipped})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("status filter want 1 got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "VK-4002" {
		t.Fatalf("unexpected order %s", orders[0].OrderNo)
	}

	orders, total, err = repo.List(OrderListFilter{CustomerEmail: "A@example.com"})
	if err != nil {
		t.Fatalf("list by email failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("email filter want 2 got %d", total)
	}
	for _, o := range orders {
		if o.CustomerEmail != "a@example.com" {
			t.Fatalf("unexpected email %s", o.CustomerEmail)
		}
	}

	orders, total, err = repo.List(OrderListFilter{OrderNo: "4002"})
	if err != nil {
		t.Fatalf("list by order no failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "VK-4002" {
		t.Fatalf("order no filter want VK-4002 got total=%d", total)
	}
}

func TestOrderRepositoryListPagination(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	for i := 0; i < 5; i++ {
		createRepoOrder(t, repo, fmt.Sprintf("VK-51%02d", i), 1, nil, "page@example.com")
	}

	orders, total, err := repo.List(OrderListFilter{StoreID: 1, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list page failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("total want 5 got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("page len want 2 got %d", len(orders))
	}
	// Newest first: page 2 of size 2 holds the third and second inserts.
	if orders[0].OrderNo != "VK-5102" || orders[1].OrderNo != "VK-5101" {
		t.Fatalf("unexpected page order %s, %s", orders[0].OrderNo, orders[1].OrderNo)
	}
}

func TestOrderRepositoryUpdatesMissingOrder(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	err := repo.Updates(12345, map[string]interface{}{"status": constants.OrderStatusShipped})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
