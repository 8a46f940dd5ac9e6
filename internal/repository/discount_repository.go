package repository

import (
	"errors"
	"strings"

	"github.com/vastrakart/vastrakart/internal/models"

	"gorm.io/gorm"
)

// DiscountRepository is the discount code data access interface.
type DiscountRepository interface {
	GetByID(id uint) (*models.Discount, error)
	GetByCode(storeID uint, code string) (*models.Discount, error)
	Create(discount *models.Discount) error
	Update(discount *models.Discount) error
	WithTx(tx *gorm.DB) *GormDiscountRepository
}

// GormDiscountRepository is the GORM implementation.
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a discount repository.
func NewDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormDiscountRepository) WithTx(tx *gorm.DB) *GormDiscountRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRepository{db: tx}
}

// GetByID fetches a discount by id.
func (r *GormDiscountRepository) GetByID(id uint) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// GetByCode fetches a store-scoped discount by code (case-insensitive).
func (r *GormDiscountRepository) GetByCode(storeID uint, code string) (*models.Discount, error) {
	var discount models.Discount
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.Where("store_id = ? AND UPPER(code) = ?", storeID, normalized).First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// Create inserts a discount.
func (r *GormDiscountRepository) Create(discount *models.Discount) error {
	return r.db.Create(discount).Error
}

// Update saves a discount.
func (r *GormDiscountRepository) Update(discount *models.Discount) error {
	return r.db.Save(discount).Error
}
