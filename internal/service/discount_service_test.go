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

func setupDiscountServiceTest(t *testing.T) (*DiscountService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:discount_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewDiscountService(repository.NewDiscountRepository(db)), db
}

func createDiscount(t *testing.T, db *gorm.DB, discount models.Discount) models.Discount {
	t.Helper()
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}
	return discount
}

func TestCalculateAmountPercentageWithCap(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:           1,
		Code:              "SAVE10",
		Type:              constants.DiscountTypePercentage,
		Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		IsActive:          true,
	})

	// 10% of 1180 is 118, capped at 100.
	amount, discount, err := svc.CalculateAmount(1, "SAVE10", decimal.NewFromInt(1180), time.Now())
	if err != nil {
		t.Fatalf("calculate amount failed: %v", err)
	}
	if !amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected capped discount 100, got %s", amount)
	}
	if discount.Code != "SAVE10" {
		t.Fatalf("unexpected discount: %+v", discount)
	}
}

func TestCalculateAmountPercentageUncapped(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "FLAT20",
		Type:     constants.DiscountTypePercentage,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		IsActive: true,
	})

	amount, _, err := svc.CalculateAmount(1, "FLAT20", decimal.NewFromInt(500), time.Now())
	if err != nil {
		t.Fatalf("calculate amount failed: %v", err)
	}
	if !amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100, got %s", amount)
	}
}

func TestCalculateAmountFixedClampedToCartTotal(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "BIGSAVE",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		IsActive: true,
	})

	amount, _, err := svc.CalculateAmount(1, "BIGSAVE", decimal.NewFromInt(300), time.Now())
	if err != nil {
		t.Fatalf("calculate amount failed: %v", err)
	}
	if !amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected clamp to cart total 300, got %s", amount)
	}
}

func TestCalculateAmountBelowMinimum(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:           1,
		Code:              "MIN500",
		Type:              constants.DiscountTypeFixed,
		Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		IsActive:          true,
	})

	_, _, err := svc.CalculateAmount(1, "MIN500", decimal.NewFromInt(499), time.Now())
	if !errors.Is(err, ErrDiscountBelowMinimum) {
		t.Fatalf("expected below minimum error, got %v", err)
	}
}

func TestCalculateAmountUnknownOrInactiveCode(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "DISABLED",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		IsActive: false,
	})

	if _, _, err := svc.CalculateAmount(1, "NOPE", decimal.NewFromInt(100), time.Now()); !errors.Is(err, ErrDiscountInvalid) {
		t.Fatalf("expected invalid code error, got %v", err)
	}
	if _, _, err := svc.CalculateAmount(1, "DISABLED", decimal.NewFromInt(100), time.Now()); !errors.Is(err, ErrDiscountInvalid) {
		t.Fatalf("expected invalid code error for inactive code, got %v", err)
	}
}

func TestCalculateAmountValidityWindow(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "SOON",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		StartsAt: &future,
		IsActive: true,
	})
	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "GONE",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		EndsAt:   &past,
		IsActive: true,
	})

	if _, _, err := svc.CalculateAmount(1, "SOON", decimal.NewFromInt(100), now); !errors.Is(err, ErrDiscountNotStarted) {
		t.Fatalf("expected not started error, got %v", err)
	}
	if _, _, err := svc.CalculateAmount(1, "GONE", decimal.NewFromInt(100), now); !errors.Is(err, ErrDiscountExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestCalculateAmountUsageLimit(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:    1,
		Code:       "LIMITED",
		Type:       constants.DiscountTypeFixed,
		Value:      models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		UsageLimit: 2,
		UsedCount:  2,
		IsActive:   true,
	})

	_, _, err := svc.CalculateAmount(1, "LIMITED", decimal.NewFromInt(100), time.Now())
	if !errors.Is(err, ErrDiscountUsageLimit) {
		t.Fatalf("expected usage limit error, got %v", err)
	}
}

func TestCalculateAmountNeverNegativeNorExceedsTotal(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	createDiscount(t, db, models.Discount{
		StoreID:  1,
		Code:     "FULL",
		Type:     constants.DiscountTypePercentage,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		IsActive: true,
	})

	amount, _, err := svc.CalculateAmount(1, "FULL", decimal.RequireFromString("49.99"), time.Now())
	if err != nil {
		t.Fatalf("calculate amount failed: %v", err)
	}
	if amount.Sign() < 0 {
		t.Fatalf("discount went negative: %s", amount)
	}
	if amount.GreaterThan(decimal.RequireFromString("49.99")) {
		t.Fatalf("discount exceeds cart total: %s", amount)
	}
}
