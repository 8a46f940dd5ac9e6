package repository

import "time"

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page          int
	PageSize      int
	StoreID       uint
	CustomerID    uint
	Status        string
	PaymentStatus string
	OrderNo       string
	CustomerEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// CancelRequestListFilter filters cancellation request listings.
type CancelRequestListFilter struct {
	Page     int
	PageSize int
	StoreID  uint
	OrderID  uint
	Type     string
	Status   string
}

// ProductListFilter filters catalog listings.
type ProductListFilter struct {
	Page       int
	PageSize   int
	StoreID    uint
	Search     string
	OnlyActive bool
}
