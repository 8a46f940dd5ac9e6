package repository

import (
	"errors"

	"github.com/vastrakart/vastrakart/internal/models"

	"gorm.io/gorm"
)

// StoreRepository is the store data access interface.
type StoreRepository interface {
	GetByID(id uint) (*models.Store, error)
	GetByLookupKey(key string) (*models.Store, error)
	WithTx(tx *gorm.DB) *GormStoreRepository
}

// GormStoreRepository is the GORM implementation.
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a store repository.
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormStoreRepository) WithTx(tx *gorm.DB) *GormStoreRepository {
	if tx == nil {
		return r
	}
	return &GormStoreRepository{db: tx}
}

// GetByID fetches a store by id.
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetByLookupKey fetches a store by its public lookup key.
func (r *GormStoreRepository) GetByLookupKey(key string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("lookup_key = ? AND is_active = ?", key, true).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}
