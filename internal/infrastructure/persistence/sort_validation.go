package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns DESC if the input is empty or invalid.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of
// allowed columns. Returns defaultField when the input is empty or not
// in the whitelist, so user input can never reach the ORDER BY clause
// unchecked.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains columns common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// OrderSortFields contains allowed sort columns for special orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"customer_name": true,
	"status":        true,
	"total_amount":  true,
}

// SupplierSortFields contains allowed sort columns for suppliers
var SupplierSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"rating":             true,
	"avg_delivery_days":  true,
	"total_orders_count": true,
}

// InventorySortFields contains allowed sort columns for inventory items
var InventorySortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"quantity":        true,
	"min_stock_level": true,
	"unit_price":      true,
	"location":        true,
}

// ManufacturerSortFields contains allowed sort columns for manufacturers
var ManufacturerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"country":    true,
}

// UserSortFields contains allowed sort columns for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"role":          true,
	"last_login_at": true,
}
