package persistence

import (
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// applyPagination applies page and page size limits to the query.
// A zero page size means the caller wants the full result set; the
// bookkeeping view and the CSV exports rely on that.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize <= 0 {
		return query
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
}
