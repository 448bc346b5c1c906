package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
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

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"start_date": true,
	"end_date":   true,
	"budget":     true,
	"spent":      true,
}

// AssessmentSortFields contains allowed sort fields for risk assessments
var AssessmentSortFields = map[string]bool{
	"created_at":    true,
	"assessed_at":   true,
	"overall_score": true,
}

// TicketSaleSortFields contains allowed sort fields for ticket sales
var TicketSaleSortFields = map[string]bool{
	"created_at": true,
	"sold_at":    true,
	"quantity":   true,
	"amount":     true,
	"channel":    true,
}

// AssetSortFields contains allowed sort fields for assets
var AssetSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"tag":               true,
	"name":              true,
	"category":          true,
	"status":            true,
	"replacement_value": true,
}

// PolicySortFields contains allowed sort fields for insurance policies
var PolicySortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"policy_number":  true,
	"carrier":        true,
	"coverage_limit": true,
	"effective_date": true,
	"expiry_date":    true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"payee":        true,
	"method":       true,
	"amount":       true,
	"status":       true,
	"check_number": true,
	"paid_at":      true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"number":      true,
	"vendor_name": true,
}
