package service

import (
	"time"

	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLine is a cart line with its live product resolved.
type CartLine struct {
	ProductID   uint                  `json:"product_id"`
	VariantID   uint                  `json:"variant_id,omitempty"`
	ProductName string                `json:"product_name"`
	Quantity    int                   `json:"quantity"`
	UnitPrice   models.Money          `json:"unit_price"`
	LineTotal   models.Money          `json:"line_total"`
	GSTPercent  models.Money          `json:"gst_percent"`
	Attributes  models.AttributePairs `json:"attributes,omitempty"`
	Product     *models.Product       `json:"product,omitempty"`
}

// CartSummary is the cart with its computed totals.
type CartSummary struct {
	Items          []CartLine   `json:"items"`
	ItemCount      int          `json:"item_count"`
	Subtotal       models.Money `json:"subtotal"`
	DiscountCode   string       `json:"discount_code,omitempty"`
	DiscountAmount models.Money `json:"discount_amount"`
	Total          models.Money `json:"total"`
}

// TaxLine is a per-line GST breakdown.
type TaxLine struct {
	ProductID  uint         `json:"product_id"`
	VariantID  uint         `json:"variant_id,omitempty"`
	Quantity   int          `json:"quantity"`
	LineAmount models.Money `json:"line_amount"`
	GSTPercent models.Money `json:"gst_percent"`
	CGST       models.Money `json:"cgst"`
	SGST       models.Money `json:"sgst"`
	IGST       models.Money `json:"igst"`
}

// TaxSummary is the cart-level GST computation for a buyer state.
type TaxSummary struct {
	Subtotal   models.Money `json:"subtotal"`
	CGSTTotal  models.Money `json:"cgst_total"`
	SGSTTotal  models.Money `json:"sgst_total"`
	IGSTTotal  models.Money `json:"igst_total"`
	TotalTax   models.Money `json:"total_tax"`
	GrandTotal models.Money `json:"grand_total"`
	Lines      []TaxLine    `json:"lines"`
}

// AddCartItemInput adds a product to a cart.
type AddCartItemInput struct {
	StoreID    uint
	CartKey    string
	ProductID  uint
	VariantID  uint
	Quantity   int
	Attributes models.AttributePairs
}

// CartService manages session carts and their derived totals.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	discountSvc *DiscountService
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, discountSvc *DiscountService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		discountSvc: discountSvc,
	}
}

// AddItem validates the product and adds or merges a cart line. The unit
// price is snapshotted as the current effective price (sale price if set).
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.StoreID == 0 || input.CartKey == "" || input.ProductID == 0 {
		return ErrInvalidCartItem
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.StoreID != input.StoreID {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductInactive
	}

	unitPrice := product.EffectivePrice()
	attributes := input.Attributes
	if input.VariantID != 0 {
		variant, err := s.productRepo.GetVariantByID(input.VariantID)
		if err != nil {
			return err
		}
		if variant == nil || variant.ProductID != product.ID {
			return ErrVariantNotFound
		}
		if !variant.IsActive {
			return ErrProductInactive
		}
		unitPrice = variant.EffectivePrice(product)
		if len(attributes) == 0 {
			attributes = variant.Attributes
		}
	}

	now := time.Now()
	item := &models.CartItem{
		StoreID:    input.StoreID,
		CartKey:    input.CartKey,
		ProductID:  input.ProductID,
		VariantID:  input.VariantID,
		Quantity:   input.Quantity,
		UnitPrice:  unitPrice,
		Attributes: attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.cartRepo.Upsert(item)
}

// UpdateQuantity sets a cart line to an absolute quantity.
func (s *CartService) UpdateQuantity(storeID uint, cartKey string, productID, variantID uint, quantity int) error {
	if storeID == 0 || cartKey == "" || productID == 0 {
		return ErrInvalidCartItem
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.UpdateQuantity(storeID, cartKey, productID, variantID, quantity)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(storeID uint, cartKey string, productID, variantID uint) error {
	if storeID == 0 || cartKey == "" || productID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.DeleteItem(storeID, cartKey, productID, variantID)
}

// Clear empties the cart and drops any applied discount association.
func (s *CartService) Clear(storeID uint, cartKey string) error {
	if err := s.cartRepo.ClearByKey(storeID, cartKey); err != nil {
		return err
	}
	return s.cartRepo.ClearDiscount(storeID, cartKey)
}

// Lines resolves the cart rows against the live catalog. Lines whose product
// disappeared or went inactive are silently dropped from the cart.
func (s *CartService) Lines(storeID uint, cartKey string) ([]CartLine, error) {
	if storeID == 0 || cartKey == "" {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByKey(storeID, cartKey)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteItem(storeID, cartKey, item.ProductID, item.VariantID)
			continue
		}

		unitPrice := product.EffectivePrice()
		if item.VariantID != 0 && item.Variant != nil {
			unitPrice = item.Variant.EffectivePrice(product)
		}
		lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))

		lines = append(lines, CartLine{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   models.NewMoneyFromDecimal(lineTotal),
			GSTPercent:  product.GSTPercent,
			Attributes:  item.Attributes,
			Product:     product,
		})
	}
	return lines, nil
}

// Summary returns the cart with subtotal, item count and any applied
// discount revalidated against the live discount row.
func (s *CartService) Summary(storeID uint, cartKey string, now time.Time) (*CartSummary, error) {
	lines, err := s.Lines(storeID, cartKey)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	count := 0
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
		count += line.Quantity
	}

	summary := &CartSummary{
		Items:     lines,
		ItemCount: count,
		Subtotal:  models.NewMoneyFromDecimal(subtotal),
	}

	discountAmount := decimal.Zero
	assoc, err := s.cartRepo.GetDiscount(storeID, cartKey)
	if err != nil {
		return nil, err
	}
	if assoc != nil {
		amount, discount, err := s.discountSvc.CalculateAmount(storeID, assoc.Code, subtotal, now)
		if err != nil {
			// A code that went invalid since it was applied is dropped, not
			// surfaced as a cart failure.
			_ = s.cartRepo.ClearDiscount(storeID, cartKey)
		} else {
			discountAmount = amount
			summary.DiscountCode = discount.Code
		}
	}
	summary.DiscountAmount = models.NewMoneyFromDecimal(discountAmount)
	summary.Total = models.NewMoneyFromDecimal(subtotal.Sub(discountAmount))
	return summary, nil
}

// ApplyDiscount validates a code against the current cart subtotal and
// stores the session association. No usage count is consumed here.
func (s *CartService) ApplyDiscount(storeID uint, cartKey, code string, now time.Time) (*CartSummary, error) {
	lines, err := s.Lines(storeID, cartKey)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	_, discount, err := s.discountSvc.CalculateAmount(storeID, code, subtotal, now)
	if err != nil {
		return nil, err
	}
	assoc := &models.CartDiscount{
		StoreID: storeID,
		CartKey: cartKey,
		Code:    discount.Code,
	}
	if err := s.cartRepo.SetDiscount(assoc); err != nil {
		return nil, err
	}
	return s.Summary(storeID, cartKey, now)
}

// RemoveDiscount drops the session discount association.
func (s *CartService) RemoveDiscount(storeID uint, cartKey string, now time.Time) (*CartSummary, error) {
	if err := s.cartRepo.ClearDiscount(storeID, cartKey); err != nil {
		return nil, err
	}
	return s.Summary(storeID, cartKey, now)
}

// TaxSummary computes the GST breakdown for the cart against a buyer state.
// Raw line values are accumulated and rounded once at the boundary. This is
// a display breakdown that treats unit prices as tax-exclusive; checkout
// treats them as tax-inclusive, so its payable is subtotal minus discount
// plus shipping, with no GST added on top.
func (s *CartService) TaxSummary(storeID uint, cartKey, sellerState, buyerState string) (*TaxSummary, error) {
	lines, err := s.Lines(storeID, cartKey)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	var taxTotal GSTBreakup
	taxLines := make([]TaxLine, 0, len(lines))
	for _, line := range lines {
		lineAmount := line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineAmount)

		breakup := LineGST(line.UnitPrice.Decimal, line.Quantity, line.GSTPercent.Decimal, sellerState, buyerState)
		taxTotal = taxTotal.Add(breakup)

		taxLines = append(taxLines, TaxLine{
			ProductID:  line.ProductID,
			VariantID:  line.VariantID,
			Quantity:   line.Quantity,
			LineAmount: models.NewMoneyFromDecimal(lineAmount),
			GSTPercent: line.GSTPercent,
			CGST:       models.NewMoneyFromDecimal(breakup.CGST),
			SGST:       models.NewMoneyFromDecimal(breakup.SGST),
			IGST:       models.NewMoneyFromDecimal(breakup.IGST),
		})
	}

	return &TaxSummary{
		Subtotal:   models.NewMoneyFromDecimal(subtotal),
		CGSTTotal:  models.NewMoneyFromDecimal(taxTotal.CGST),
		SGSTTotal:  models.NewMoneyFromDecimal(taxTotal.SGST),
		IGSTTotal:  models.NewMoneyFromDecimal(taxTotal.IGST),
		TotalTax:   models.NewMoneyFromDecimal(taxTotal.Total()),
		GrandTotal: models.NewMoneyFromDecimal(subtotal.Add(taxTotal.Total())),
		Lines:      taxLines,
	}, nil
}
