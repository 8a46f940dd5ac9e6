package repository

import "gorm.io/gorm"

// applyPagination applies page/size limits. A non-positive page size means
// unpaginated; callers clamp user input before it reaches here.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
