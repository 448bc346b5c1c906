package project

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectRepository persists projects
type ProjectRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Project, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status Status) ([]Project, error)
	// TenantsWithStatus lists tenants owning at least one project in status
	TenantsWithStatus(ctx context.Context, status Status) ([]uuid.UUID, error)
	// Save inserts or updates. Updates are guarded by the aggregate version.
	Save(ctx context.Context, project *Project) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ScheduleRepository persists schedule items
type ScheduleRepository interface {
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]ScheduleItem, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ScheduleItem, error)
	Save(ctx context.Context, item *ScheduleItem) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// CrewRepository persists crew assignments
type CrewRepository interface {
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]CrewAssignment, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CrewAssignment, error)
	Save(ctx context.Context, assignment *CrewAssignment) error
}
