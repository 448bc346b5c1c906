package procurement

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchStatus is the reconciliation state of a vendor invoice
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchMatched   MatchStatus = "matched"
	MatchException MatchStatus = "exception"
)

// VendorInvoice is a bill received from a vendor against a purchase order
type VendorInvoice struct {
	shared.TenantAggregateRoot
	PurchaseOrderID uuid.UUID           `gorm:"type:uuid;not null;index"`
	InvoiceNumber   string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_vendor_invoices_tenant_number,priority:2"`
	InvoiceDate     time.Time           `gorm:"not null"`
	MatchStatus     MatchStatus         `gorm:"type:varchar(20);not null;default:'pending';index"`
	MatchResult     *MatchResult        `gorm:"serializer:json;type:jsonb"`
	MatchedAt       *time.Time
	Lines           []VendorInvoiceLine `gorm:"foreignKey:VendorInvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (VendorInvoice) TableName() string {
	return "vendor_invoices"
}

// VendorInvoiceLine is one billed item
type VendorInvoiceLine struct {
	shared.BaseEntity
	VendorInvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode        string          `gorm:"type:varchar(50);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (VendorInvoiceLine) TableName() string {
	return "vendor_invoice_lines"
}

// NewVendorInvoice records a vendor bill. Lines may reference items that are
// not on the order; the match flags them.
func NewVendorInvoice(po *PurchaseOrder, number string, invoiceDate time.Time, lines []LineInput) (*VendorInvoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Invoice needs at least one line")
	}
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	inv := &VendorInvoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(po.TenantID),
		PurchaseOrderID:     po.ID,
		InvoiceNumber:       number,
		InvoiceDate:         invoiceDate,
		MatchStatus:         MatchPending,
	}
	for _, in := range lines {
		if err := validateLine(in, true); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, VendorInvoiceLine{
			BaseEntity:      shared.NewBaseEntity(),
			VendorInvoiceID: inv.ID,
			ItemCode:        normalizeItemCode(in.ItemCode),
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
		})
	}
	return inv, nil
}

// Total returns the billed amount
func (inv *VendorInvoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range inv.Lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return total
}

// ApplyMatch stores a match outcome on the invoice
func (inv *VendorInvoice) ApplyMatch(result MatchResult, at time.Time) {
	inv.MatchStatus = result.Status
	inv.MatchResult = &result
	inv.MatchedAt = &at
	inv.MarkModified(at)
}
