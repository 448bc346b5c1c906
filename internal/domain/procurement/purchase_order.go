// Package procurement covers purchase orders, goods receipts and vendor
// invoices, and reconciles the three with a three-way match.
package procurement

import (
	"strings"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is an order placed with a vendor
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number     string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_orders_tenant_number,priority:2"`
	VendorName string              `gorm:"type:varchar(200);not null"`
	ProjectID  *uuid.UUID          `gorm:"type:uuid;index"`
	Currency   string              `gorm:"type:varchar(3);not null;default:'USD'"`
	Lines      []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderLine is one ordered item
type PurchaseOrderLine struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode        string          `gorm:"type:varchar(50);not null"`
	Description     string          `gorm:"type:varchar(200)"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// LineInput is the caller-supplied part of any document line
type LineInput struct {
	ItemCode    string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// NewPurchaseOrder creates a purchase order with at least one line
func NewPurchaseOrder(tenantID uuid.UUID, number, vendor string, lines []LineInput) (*PurchaseOrder, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "Purchase order number cannot be empty")
	}
	if strings.TrimSpace(vendor) == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Purchase order needs at least one line")
	}

	po := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		VendorName:          vendor,
		Currency:            "USD",
	}
	for _, in := range lines {
		if err := validateLine(in, true); err != nil {
			return nil, err
		}
		po.Lines = append(po.Lines, PurchaseOrderLine{
			BaseEntity:      shared.NewBaseEntity(),
			PurchaseOrderID: po.ID,
			ItemCode:        normalizeItemCode(in.ItemCode),
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
		})
	}
	return po, nil
}

// HasItem reports whether itemCode appears on the order
func (po *PurchaseOrder) HasItem(itemCode string) bool {
	code := normalizeItemCode(itemCode)
	for _, l := range po.Lines {
		if l.ItemCode == code {
			return true
		}
	}
	return false
}

func normalizeItemCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateLine(in LineInput, priced bool) error {
	if strings.TrimSpace(in.ItemCode) == "" {
		return shared.NewDomainError("INVALID_ITEM_CODE", "Line item code cannot be empty")
	}
	if !in.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if priced && in.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Line unit price cannot be negative")
	}
	return nil
}
