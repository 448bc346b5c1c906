package payment

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository is a mock implementation of payment.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByExternalRef(ctx context.Context, ref string) (*payment.Payment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]payment.Payment, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) CreateCheck(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
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

// MockCardGateway is a mock implementation of payment.CardGateway
type MockCardGateway struct {
	mock.Mock
}

func (m *MockCardGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockCardGateway) CancelIntent(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

func (m *MockCardGateway) ParseWebhook(payload []byte, signature string) (*payment.GatewayEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.GatewayEvent), args.Error(1)
}
