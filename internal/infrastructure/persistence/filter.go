package persistence

import (
	"strings"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// sortableColumns whitelists the columns callers may order by. Anything
// outside the whitelist falls back to the repository's default ordering so
// user input never reaches the ORDER BY clause verbatim.
var sortableColumns = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"date":            true,
	"expiration_date": true,
	"quantity":        true,
	"total_stock":     true,
	"order_number":    true,
	"amount":          true,
}

// applyFilter applies pagination and ordering from the filter, using
// defaultOrder when no valid ordering is requested.
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && sortableColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	return query
}
