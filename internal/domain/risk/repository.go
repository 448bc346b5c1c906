package risk

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssessmentRepository persists assessment snapshots
type AssessmentRepository interface {
	Save(ctx context.Context, assessment *Assessment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Assessment, error)
	// FindByProject returns assessments for a project, newest first
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]Assessment, error)
	CountByProject(ctx context.Context, tenantID, projectID uuid.UUID) (int64, error)
	// FindLatest returns the most recent assessment for a project
	FindLatest(ctx context.Context, tenantID, projectID uuid.UUID) (*Assessment, error)
}
