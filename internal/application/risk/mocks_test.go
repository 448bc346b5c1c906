package risk

import (
	"context"
	"sync"

	"github.com/ghxstship/backend/internal/application/notification"
	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/risk"
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

type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Save(ctx context.Context, a *risk.Assessment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssessmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*risk.Assessment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]risk.Assessment, error) {
	args := m.Called(ctx, tenantID, projectID, filter)
	return args.Get(0).([]risk.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) CountByProject(ctx context.Context, tenantID, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssessmentRepository) FindLatest(ctx context.Context, tenantID, projectID uuid.UUID) (*risk.Assessment, error) {
	args := m.Called(ctx, tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Assessment), args.Error(1)
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

type capturingMailer struct {
	sent []notification.Message
	err  error
}

func (m *capturingMailer) Send(_ context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
