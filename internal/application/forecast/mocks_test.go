package forecast

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTicketSaleRepository is a mock implementation of demand.TicketSaleRepository
type MockTicketSaleRepository struct {
	mock.Mock
}

func (m *MockTicketSaleRepository) Save(ctx context.Context, sale *demand.TicketSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockTicketSaleRepository) SaveBatch(ctx context.Context, sales []*demand.TicketSale) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockTicketSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID, filter shared.Filter) ([]demand.TicketSale, error) {
	args := m.Called(ctx, tenantID, eventID, filter)
	return args.Get(0).([]demand.TicketSale), args.Error(1)
}

func (m *MockTicketSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketSaleRepository) FindInRange(ctx context.Context, tenantID uuid.UUID, query demand.SalesQuery) ([]demand.TicketSale, error) {
	args := m.Called(ctx, tenantID, query)
	return args.Get(0).([]demand.TicketSale), args.Error(1)
}

type recordingInvalidator struct {
	tenants []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, tenantID uuid.UUID) {
	r.tenants = append(r.tenants, tenantID)
}
