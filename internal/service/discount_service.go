package service

import (
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountService validates discount codes and computes discount amounts.
// Calculation has no side effects; applying a code is only a session-scoped
// association until an order is placed.
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a discount service.
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// Resolve fetches and validates a code against the current time.
func (s *DiscountService) Resolve(storeID uint, code string, now time.Time) (*models.Discount, error) {
	code = strings.TrimSpace(code)
	if storeID == 0 || code == "" {
		return nil, ErrDiscountInvalid
	}
	discount, err := s.discountRepo.GetByCode(storeID, code)
	if err != nil {
		return nil, err
	}
	if discount == nil || !discount.IsActive {
		return nil, ErrDiscountInvalid
	}
	if discount.StartsAt != nil && now.Before(*discount.StartsAt) {
		return nil, ErrDiscountNotStarted
	}
	if discount.EndsAt != nil && now.After(*discount.EndsAt) {
		return nil, ErrDiscountExpired
	}
	if discount.UsageLimit > 0 && discount.UsedCount >= discount.UsageLimit {
		return nil, ErrDiscountUsageLimit
	}
	return discount, nil
}

// CalculateAmount computes the discount for a cart total. The result is never
// negative and never exceeds the cart total; percentage discounts are capped
// by max_discount_amount when set.
func (s *DiscountService) CalculateAmount(storeID uint, code string, cartTotal decimal.Decimal, now time.Time) (decimal.Decimal, *models.Discount, error) {
	discount, err := s.Resolve(storeID, code, now)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if cartTotal.Sign() <= 0 {
		return decimal.Zero, nil, ErrDiscountBelowMinimum
	}
	if discount.MinPurchaseAmount.Decimal.Sign() > 0 && cartTotal.LessThan(discount.MinPurchaseAmount.Decimal) {
		return decimal.Zero, nil, ErrDiscountBelowMinimum
	}

	var amount decimal.Decimal
	switch discount.Type {
	case constants.DiscountTypePercentage:
		amount = cartTotal.Mul(discount.Value.Decimal).Div(decimal.NewFromInt(100))
		if discount.MaxDiscountAmount.Decimal.Sign() > 0 && amount.GreaterThan(discount.MaxDiscountAmount.Decimal) {
			amount = discount.MaxDiscountAmount.Decimal
		}
	case constants.DiscountTypeFixed:
		amount = discount.Value.Decimal
	default:
		return decimal.Zero, nil, ErrDiscountInvalid
	}

	if amount.GreaterThan(cartTotal) {
		amount = cartTotal
	}
	if amount.Sign() < 0 {
		amount = decimal.Zero
	}
	return amount, discount, nil
}
