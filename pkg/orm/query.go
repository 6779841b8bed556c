// Package orm holds small gorm helpers shared by the repositories.
package orm

import "gorm.io/gorm"

// Pagination is the meta block returned next to every paginated data set.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Scope builds a query fragment (model, joins, WHERE) onto tx.
type Scope = func(tx *gorm.DB) *gorm.DB

// Paginate runs the same scope twice against db: once for the total count
// and once for the row page. Because both queries are built from the one
// scope, meta.total can never disagree with the filtered rows; only the
// ORDER BY and LIMIT/OFFSET differ. page is clamped to a minimum of 1.
func Paginate(db *gorm.DB, scope Scope, order string, page, limit int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	var total int64
	if err := scope(db).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := scope(db).Order(order).Limit(limit).Offset(offset).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	return Pagination{Total: total, Page: page, Limit: limit}, nil
}
