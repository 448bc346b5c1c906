package persistence

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssessmentRepository implements risk.AssessmentRepository using GORM
type GormAssessmentRepository struct {
	db *gorm.DB
}

// NewGormAssessmentRepository creates a new GormAssessmentRepository
func NewGormAssessmentRepository(db *gorm.DB) *GormAssessmentRepository {
	return &GormAssessmentRepository{db: db}
}

// Save inserts an assessment snapshot. Snapshots are never updated.
func (r *GormAssessmentRepository) Save(ctx context.Context, a *risk.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByIDForTenant finds an assessment within a tenant
func (r *GormAssessmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*risk.Assessment, error) {
	var a risk.Assessment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&a).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &a, nil
}

// FindByProject returns a project's assessments, newest first by default
func (r *GormAssessmentRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]risk.Assessment, error) {
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "assessed_at", "desc"
	}
	var out []risk.Assessment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Scopes(paginate(filter, AssessmentSortFields, "assessed_at")).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountByProject counts a project's assessments
func (r *GormAssessmentRepository) CountByProject(ctx context.Context, tenantID, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&risk.Assessment{}).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Count(&count).Error
	return count, err
}

// FindLatest returns the newest assessment of a project
func (r *GormAssessmentRepository) FindLatest(ctx context.Context, tenantID, projectID uuid.UUID) (*risk.Assessment, error) {
	var a risk.Assessment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("assessed_at DESC").
		First(&a).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &a, nil
}

var _ risk.AssessmentRepository = (*GormAssessmentRepository)(nil)
