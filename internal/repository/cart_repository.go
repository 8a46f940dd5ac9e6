package repository

import (
	"errors"

	"github.com/vastrakart/vastrakart/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	ListByKey(storeID uint, cartKey string) ([]models.CartItem, error)
	Upsert(item *models.CartItem) error
	UpdateQuantity(storeID uint, cartKey string, productID, variantID uint, quantity int) error
	DeleteItem(storeID uint, cartKey string, productID, variantID uint) error
	ClearByKey(storeID uint, cartKey string) error
	GetDiscount(storeID uint, cartKey string) (*models.CartDiscount, error)
	SetDiscount(assoc *models.CartDiscount) error
	ClearDiscount(storeID uint, cartKey string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByKey returns the cart lines for a cart key.
func (r *GormCartRepository) ListByKey(storeID uint, cartKey string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Variant").
		Where("store_id = ? AND cart_key = ?", storeID, cartKey).
		Order("updated_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert inserts or replaces a cart line for (cart_key, product, variant).
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("store_id = ? AND cart_key = ? AND product_id = ? AND variant_id = ?",
		item.StoreID, item.CartKey, item.ProductID, item.VariantID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   existing.Quantity + item.Quantity,
		"unit_price": item.UnitPrice,
		"attributes": item.Attributes,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// UpdateQuantity sets the quantity of an existing cart line.
func (r *GormCartRepository) UpdateQuantity(storeID uint, cartKey string, productID, variantID uint, quantity int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("store_id = ? AND cart_key = ? AND product_id = ? AND variant_id = ?", storeID, cartKey, productID, variantID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteItem removes a cart line.
func (r *GormCartRepository) DeleteItem(storeID uint, cartKey string, productID, variantID uint) error {
	return r.db.Where("store_id = ? AND cart_key = ? AND product_id = ? AND variant_id = ?",
		storeID, cartKey, productID, variantID).
		Delete(&models.CartItem{}).Error
}

// ClearByKey empties a cart.
func (r *GormCartRepository) ClearByKey(storeID uint, cartKey string) error {
	return r.db.Where("store_id = ? AND cart_key = ?", storeID, cartKey).Delete(&models.CartItem{}).Error
}

// GetDiscount returns the applied discount association, if any.
func (r *GormCartRepository) GetDiscount(storeID uint, cartKey string) (*models.CartDiscount, error) {
	var assoc models.CartDiscount
	if err := r.db.Where("store_id = ? AND cart_key = ?", storeID, cartKey).First(&assoc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assoc, nil
}

// SetDiscount stores the applied discount association for a cart.
func (r *GormCartRepository) SetDiscount(assoc *models.CartDiscount) error {
	if assoc == nil {
		return nil
	}
	var existing models.CartDiscount
	err := r.db.Where("store_id = ? AND cart_key = ?", assoc.StoreID, assoc.CartKey).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(assoc).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Update("code", assoc.Code).Error
}

// ClearDiscount removes the applied discount association.
func (r *GormCartRepository) ClearDiscount(storeID uint, cartKey string) error {
	return r.db.Where("store_id = ? AND cart_key = ?", storeID, cartKey).Delete(&models.CartDiscount{}).Error
}
