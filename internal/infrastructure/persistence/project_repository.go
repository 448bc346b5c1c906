package persistence

import (
	"context"
	"errors"

	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateProjectCode is returned when a tenant already uses a project code
var ErrDuplicateProjectCode = shared.NewDomainError("ALREADY_EXISTS", "Project code already exists")

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByIDForTenant finds a project by ID within a tenant
func (r *GormProjectRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.Project, error) {
	var p project.Project
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &p, nil
}

// FindAllForTenant lists a tenant's projects
func (r *GormProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	var projects []project.Project
	err := r.applyFilter(r.db.WithContext(ctx).Model(&project.Project{}).Scopes(tenantScope(tenantID)), filter).
		Scopes(paginate(filter, ProjectSortFields, "created_at")).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CountForTenant counts a tenant's projects matching filter
func (r *GormProjectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&project.Project{}).Scopes(tenantScope(tenantID)), filter).
		Count(&count).Error
	return count, err
}

// FindByStatus finds every project of a tenant in the given status
func (r *GormProjectRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status project.Status) ([]project.Project, error) {
	var projects []project.Project
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Order("code ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// TenantsWithStatus lists tenants that own at least one project in status
func (r *GormProjectRepository) TenantsWithStatus(ctx context.Context, status project.Status) ([]uuid.UUID, error) {
	var tenantIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Where("status = ?", status).
		Distinct().
		Pluck("tenant_id", &tenantIDs).Error; err != nil {
		return nil, err
	}
	return tenantIDs, nil
}

// Save inserts a new project or updates an existing one. Updates only apply
// when the stored version is the one the caller loaded.
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	result := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Where("tenant_id = ? AND id = ? AND version = ?", p.TenantID, p.ID, p.Version-1).
		Updates(map[string]interface{}{
			"code":        p.Code,
			"name":        p.Name,
			"description": p.Description,
			"status":      p.Status,
			"start_date":  p.StartDate,
			"end_date":    p.EndDate,
			"budget":      p.Budget,
			"spent":       p.Spent,
			"currency":    p.Currency,
			"owner_email": p.OwnerEmail,
			"version":     p.Version,
			"updated_at":  p.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, ErrDuplicateProjectCode)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing int64
	if err := r.db.WithContext(ctx).Model(&project.Project{}).Where("id = ?", p.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return shared.ErrConcurrencyConflict
	}
	return translateError(r.db.WithContext(ctx).Create(p).Error, ErrDuplicateProjectCode)
}

// DeleteForTenant deletes a project within a tenant
func (r *GormProjectRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND project_id = ?", tenantID, id).Delete(&project.ScheduleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND project_id = ?", tenantID, id).Delete(&project.CrewAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&project.Project{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	if status, ok := stringFilter(filter, "status"); ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// GormScheduleRepository implements ScheduleRepository using GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GormScheduleRepository
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// FindByProject lists a project's schedule in start order
func (r *GormScheduleRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]project.ScheduleItem, error) {
	var items []project.ScheduleItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("starts_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIDForTenant finds a schedule item within a tenant
func (r *GormScheduleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.ScheduleItem, error) {
	var item project.ScheduleItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &item, nil
}

// Save creates or updates a schedule item
func (r *GormScheduleRepository) Save(ctx context.Context, item *project.ScheduleItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteForTenant deletes a schedule item within a tenant
func (r *GormScheduleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&project.ScheduleItem{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCrewRepository implements CrewRepository using GORM
type GormCrewRepository struct {
	db *gorm.DB
}

// NewGormCrewRepository creates a new GormCrewRepository
func NewGormCrewRepository(db *gorm.DB) *GormCrewRepository {
	return &GormCrewRepository{db: db}
}

// FindByProject lists a project's crew
func (r *GormCrewRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]project.CrewAssignment, error) {
	var crew []project.CrewAssignment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("member_name ASC").
		Find(&crew).Error; err != nil {
		return nil, err
	}
	return crew, nil
}

// FindByIDForTenant finds a crew assignment within a tenant
func (r *GormCrewRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.CrewAssignment, error) {
	var a project.CrewAssignment
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Save creates or updates a crew assignment
func (r *GormCrewRepository) Save(ctx context.Context, a *project.CrewAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

var (
	_ project.ProjectRepository  = (*GormProjectRepository)(nil)
	_ project.ScheduleRepository = (*GormScheduleRepository)(nil)
	_ project.CrewRepository     = (*GormCrewRepository)(nil)
)
