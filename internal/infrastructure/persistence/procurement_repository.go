package persistence

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicatePONumber is returned when a tenant already uses a PO number
	ErrDuplicatePONumber = shared.NewDomainError("ALREADY_EXISTS", "Purchase order number already exists")
	// ErrDuplicateInvoiceNumber is returned when a tenant already recorded the invoice number
	ErrDuplicateInvoiceNumber = shared.NewDomainError("ALREADY_EXISTS", "Invoice number already exists")
)

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByIDForTenant loads a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var po procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&po).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &po, nil
}

// FindAllForTenant lists purchase orders with their lines
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	query := r.db.WithContext(ctx).Preload("Lines").Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(number) LIKE ? OR LOWER(vendor_name) LIKE ?", pattern, pattern)
	}
	var orders []procurement.PurchaseOrder
	if err := query.Scopes(paginate(filter, PurchaseOrderSortFields, "created_at")).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts the order and its lines
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, po *procurement.PurchaseOrder) error {
	return translateError(r.db.WithContext(ctx).Create(po).Error, ErrDuplicatePONumber)
}

// GormGoodsReceiptRepository implements procurement.GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByPurchaseOrder lists every receipt recorded against an order
func (r *GormGoodsReceiptRepository) FindByPurchaseOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]procurement.GoodsReceipt, error) {
	var receipts []procurement.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, poID).
		Order("received_at ASC").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Create inserts the receipt and its lines
func (r *GormGoodsReceiptRepository) Create(ctx context.Context, gr *procurement.GoodsReceipt) error {
	return r.db.WithContext(ctx).Create(gr).Error
}

// GormVendorInvoiceRepository implements procurement.VendorInvoiceRepository using GORM
type GormVendorInvoiceRepository struct {
	db *gorm.DB
}

// NewGormVendorInvoiceRepository creates a new GormVendorInvoiceRepository
func NewGormVendorInvoiceRepository(db *gorm.DB) *GormVendorInvoiceRepository {
	return &GormVendorInvoiceRepository{db: db}
}

// FindByIDForTenant loads an invoice with its lines
func (r *GormVendorInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.VendorInvoice, error) {
	var inv procurement.VendorInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&inv).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &inv, nil
}

// FindByPurchaseOrder lists the invoices billed against an order
func (r *GormVendorInvoiceRepository) FindByPurchaseOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]procurement.VendorInvoice, error) {
	var invoices []procurement.VendorInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, poID).
		Order("invoice_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create inserts the invoice and its lines
func (r *GormVendorInvoiceRepository) Create(ctx context.Context, inv *procurement.VendorInvoice) error {
	return translateError(r.db.WithContext(ctx).Create(inv).Error, ErrDuplicateInvoiceNumber)
}

// SaveMatch writes the match outcome columns with a version guard
func (r *GormVendorInvoiceRepository) SaveMatch(ctx context.Context, inv *procurement.VendorInvoice) error {
	result := r.db.WithContext(ctx).
		Model(inv).
		Where("tenant_id = ? AND version = ?", inv.TenantID, inv.Version-1).
		Select("match_status", "match_result", "matched_at", "version", "updated_at").
		Updates(inv)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var (
	_ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
	_ procurement.GoodsReceiptRepository  = (*GormGoodsReceiptRepository)(nil)
	_ procurement.VendorInvoiceRepository = (*GormVendorInvoiceRepository)(nil)
)
