package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.CartItem{}, &models.CartDiscount{}, &models.Discount{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	discountSvc := NewDiscountService(repository.NewDiscountRepository(db))
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), discountSvc)
	return svc, db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price int64, gstPercent int64) models.Product {
	t.Helper()
	product := models.Product{
		StoreID:    1,
		Name:       name,
		Slug:       fmt.Sprintf("%s-%d", name, time.Now().UnixNano()),
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		GSTPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(gstPercent)),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddItemAndSummary(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "kurta", 1000, 18)

	if err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-1", ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	summary, err := svc.Summary(1, "guest-1", time.Now())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", summary.ItemCount)
	}
	if summary.Subtotal.String() != "2000.00" {
		t.Fatalf("unexpected subtotal: %s", summary.Subtotal)
	}
	if summary.Total.String() != "2000.00" {
		t.Fatalf("unexpected total: %s", summary.Total)
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "saree", 1500, 5)

	for i := 0; i < 2; i++ {
		if err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-2", ProductID: product.ID, Quantity: 1}); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}

	lines, err := svc.Lines(1, "guest-2")
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", lines[0].Quantity)
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "dupatta", 300, 5)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-3", ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected product inactive error, got %v", err)
	}
}

func TestAddItemVariantPriceOverride(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "lehenga", 2000, 12)
	price := models.NewMoneyFromDecimal(decimal.NewFromInt(2400))
	variant := models.ProductVariant{
		ProductID: product.ID,
		SKU:       fmt.Sprintf("LEH-XL-%d", time.Now().UnixNano()),
		Attributes: models.AttributePairs{
			{Key: "Size", Value: "XL"},
		},
		Price:    &price,
		IsActive: true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	if err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-4", ProductID: product.ID, VariantID: variant.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	lines, err := svc.Lines(1, "guest-4")
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	if lines[0].UnitPrice.String() != "2400.00" {
		t.Fatalf("expected variant price 2400.00, got %s", lines[0].UnitPrice)
	}
	if got, ok := lines[0].Attributes.Get("Size"); !ok || got != "XL" {
		t.Fatalf("expected size attribute XL, got %q", got)
	}
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "shirt", 800, 12)

	if err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-5", ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.UpdateQuantity(1, "guest-5", product.ID, 0, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	lines, _ := svc.Lines(1, "guest-5")
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}

	if err := svc.RemoveItem(1, "guest-5", product.ID, 0); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	lines, _ = svc.Lines(1, "guest-5")
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	if err := svc.UpdateQuantity(1, "guest-6", 1, 0, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity error, got %v", err)
	}
}

func TestApplyAndRemoveDiscount(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "jacket", 1180, 18)
	createDiscount(t, db, models.Discount{
		StoreID:           1,
		Code:              "SAVE10",
		Type:              constants.DiscountTypePercentage,
		Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		IsActive:          true,
	})

	if err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-7", ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	summary, err := svc.ApplyDiscount(1, "guest-7", "SAVE10", time.Now())
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if summary.DiscountAmount.String() != "100.00" {
		t.Fatalf("expected capped discount 100.00, got %s", summary.DiscountAmount)
	}
	if summary.Total.String() != "1080.00" {
		t.Fatalf("expected total 1080.00, got %s", summary.Total)
	}

	summary, err = svc.RemoveDiscount(1, "guest-7", time.Now())
	if err != nil {
		t.Fatalf("remove discount failed: %v", err)
	}
	if summary.DiscountCode != "" || !summary.DiscountAmount.Decimal.IsZero() {
		t.Fatalf("expected discount cleared, got %+v", summary)
	}
}

func TestApplyDiscountOnEmptyCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "ANY",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: true,
	})
	if _, err := svc.ApplyDiscount(1, "guest-8", "ANY", time.Now()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected cart empty error, got %v", err)
	}
}

func TestTaxSummaryIntraAndInterState(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "sherwani", 1000, 18)

	if err := svc.AddItem(AddCartItemInput{StoreID: 1, CartKey: "guest-9", ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	intra, err := svc.TaxSummary(1, "guest-9", "Maharashtra", "Maharashtra")
	if err != nil {
		t.Fatalf("tax summary failed: %v", err)
	}
	if intra.CGSTTotal.String() != "90.00" || intra.SGSTTotal.String() != "90.00" {
		t.Fatalf("unexpected intra-state split: cgst %s sgst %s", intra.CGSTTotal, intra.SGSTTotal)
	}
	if intra.IGSTTotal.String() != "0.00" {
		t.Fatalf("expected zero igst, got %s", intra.IGSTTotal)
	}
	if intra.GrandTotal.String() != "1180.00" {
		t.Fatalf("unexpected grand total: %s", intra.GrandTotal)
	}

	inter, err := svc.TaxSummary(1, "guest-9", "Maharashtra", "Karnataka")
	if err != nil {
		t.Fatalf("tax summary failed: %v", err)
	}
	if inter.IGSTTotal.String() != "180.00" {
		t.Fatalf("expected igst 180.00, got %s", inter.IGSTTotal)
	}
	if inter.CGSTTotal.String() != "0.00" || inter.SGSTTotal.String() != "0.00" {
		t.Fatalf("expected zero cgst/sgst, got %s / %s", inter.CGSTTotal, inter.SGSTTotal)
	}
}
