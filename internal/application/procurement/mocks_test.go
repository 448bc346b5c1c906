package procurement

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseOrderRepository is a mock implementation of procurement.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, po *procurement.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

// MockGoodsReceiptRepository is a mock implementation of procurement.GoodsReceiptRepository
type MockGoodsReceiptRepository struct {
	mock.Mock
}

func (m *MockGoodsReceiptRepository) FindByPurchaseOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]procurement.GoodsReceipt, error) {
	args := m.Called(ctx, tenantID, poID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) Create(ctx context.Context, gr *procurement.GoodsReceipt) error {
	args := m.Called(ctx, gr)
	return args.Error(0)
}

// MockVendorInvoiceRepository is a mock implementation of procurement.VendorInvoiceRepository
type MockVendorInvoiceRepository struct {
	mock.Mock
}

func (m *MockVendorInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.VendorInvoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.VendorInvoice), args.Error(1)
}

func (m *MockVendorInvoiceRepository) FindByPurchaseOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]procurement.VendorInvoice, error) {
	args := m.Called(ctx, tenantID, poID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.VendorInvoice), args.Error(1)
}

func (m *MockVendorInvoiceRepository) Create(ctx context.Context, inv *procurement.VendorInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockVendorInvoiceRepository) SaveMatch(ctx context.Context, inv *procurement.VendorInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
