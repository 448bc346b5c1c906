package project

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status project.Status) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) TenantsWithStatus(ctx context.Context, status project.Status) ([]uuid.UUID, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]project.ScheduleItem, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).([]project.ScheduleItem), args.Error(1)
}

func (m *MockScheduleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.ScheduleItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.ScheduleItem), args.Error(1)
}

func (m *MockScheduleRepository) Save(ctx context.Context, item *project.ScheduleItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockScheduleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockCrewRepository struct {
	mock.Mock
}

func (m *MockCrewRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]project.CrewAssignment, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).([]project.CrewAssignment), args.Error(1)
}

func (m *MockCrewRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.CrewAssignment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.CrewAssignment), args.Error(1)
}

func (m *MockCrewRepository) Save(ctx context.Context, a *project.CrewAssignment) error {
	return m.Called(ctx, a).Error(0)
}
