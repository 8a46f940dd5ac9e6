package repository

import (
	"errors"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/models"

	"gorm.io/gorm"
)

// CancelRequestRepository is the cancellation request data access interface.
type CancelRequestRepository interface {
	Create(request *models.CancelRequest) error
	GetByID(id uint) (*models.CancelRequest, error)
	ExistsOpen(orderID uint, requestType string) (bool, error)
	List(filter CancelRequestListFilter) ([]models.CancelRequest, int64, error)
	Updates(requestID uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormCancelRequestRepository
}

// GormCancelRequestRepository is the GORM implementation.
type GormCancelRequestRepository struct {
	db *gorm.DB
}

// NewCancelRequestRepository creates a cancellation request repository.
func NewCancelRequestRepository(db *gorm.DB) *GormCancelRequestRepository {
	return &GormCancelRequestRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCancelRequestRepository) WithTx(tx *gorm.DB) *GormCancelRequestRepository {
	if tx == nil {
		return r
	}
	return &GormCancelRequestRepository{db: tx}
}

// Create inserts a request.
func (r *GormCancelRequestRepository) Create(request *models.CancelRequest) error {
	return r.db.Create(request).Error
}

// GetByID fetches a request with its order.
func (r *GormCancelRequestRepository) GetByID(id uint) (*models.CancelRequest, error) {
	var request models.CancelRequest
	if err := r.db.Preload("Order").Preload("Order.Items").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// ExistsOpen reports whether the order already has a pending or approved
// request of the given type.
func (r *GormCancelRequestRepository) ExistsOpen(orderID uint, requestType string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CancelRequest{}).
		Where("order_id = ? AND type = ? AND status IN ?", orderID, requestType,
			[]string{constants.CancelRequestStatusPending, constants.CancelRequestStatusApproved}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns requests matching the filter, newest first.
func (r *GormCancelRequestRepository) List(filter CancelRequestListFilter) ([]models.CancelRequest, int64, error) {
	var requests []models.CancelRequest
	query := r.db.Model(&models.CancelRequest{})
	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Order").Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Updates applies a partial update to a request.
func (r *GormCancelRequestRepository) Updates(requestID uint, updates map[string]interface{}) error {
	result := r.db.Model(&models.CancelRequest{}).Where("id = ?", requestID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
