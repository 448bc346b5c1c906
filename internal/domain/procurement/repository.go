package procurement

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository persists purchase orders with their lines
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	Create(ctx context.Context, po *PurchaseOrder) error
}

// GoodsReceiptRepository persists goods receipts with their lines
type GoodsReceiptRepository interface {
	FindByPurchaseOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]GoodsReceipt, error)
	Create(ctx context.Context, gr *GoodsReceipt) error
}

// VendorInvoiceRepository persists vendor invoices with their lines
type VendorInvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*VendorInvoice, error)
	FindByPurchaseOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]VendorInvoice, error)
	Create(ctx context.Context, inv *VendorInvoice) error
	// SaveMatch persists the match columns only
	SaveMatch(ctx context.Context, inv *VendorInvoice) error
}
