package persistence

import (
	"strings"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tenantScope restricts a query to one tenant's rows
func tenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// paginate applies whitelisted ordering and page bounds from filter
func paginate(filter shared.Filter, allowed map[string]bool, defaultField string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := ValidateSortField(filter.OrderBy, allowed, defaultField)
		if field != "" {
			db = db.Order(field + " " + ValidateSortOrder(filter.OrderDir))
		}
		if filter.PageSize > 0 {
			db = db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}

// searchPattern builds a case-insensitive LIKE pattern. LOWER() keeps the
// query portable between Postgres and SQLite.
func searchPattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// stringFilter returns filter.Filters[key] when it is a non-empty string
func stringFilter(filter shared.Filter, key string) (string, bool) {
	v, ok := filter.Filters[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
