package persistence

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/asset"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateAssetTag is returned when a tenant already uses an asset tag
	ErrDuplicateAssetTag = shared.NewDomainError("ALREADY_EXISTS", "Asset tag already exists")
	// ErrDuplicatePolicyNumber is returned when a tenant already uses a policy number
	ErrDuplicatePolicyNumber = shared.NewDomainError("ALREADY_EXISTS", "Policy number already exists")
)

// GormAssetRepository implements asset.AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByIDForTenant finds an asset within a tenant
func (r *GormAssetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Asset, error) {
	var a asset.Asset
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&a).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &a, nil
}

// FindAllForTenant lists a tenant's assets
func (r *GormAssetRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.Asset, error) {
	var assets []asset.Asset
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&asset.Asset{}).Scopes(tenantScope(tenantID)), filter).
		Scopes(paginate(filter, AssetSortFields, "created_at")).
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// CountForTenant counts a tenant's assets matching filter
func (r *GormAssetRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&asset.Asset{}).Scopes(tenantScope(tenantID)), filter).
		Count(&count).Error
	return count, err
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	return translateError(r.db.WithContext(ctx).Save(a).Error, ErrDuplicateAssetTag)
}

func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(tag) LIKE ? OR LOWER(serial_number) LIKE ?", pattern, pattern, pattern)
	}
	if status, ok := stringFilter(filter, "status"); ok {
		query = query.Where("status = ?", status)
	}
	if category, ok := stringFilter(filter, "category"); ok {
		query = query.Where("category = ?", category)
	}
	return query
}

// GormPolicyRepository implements asset.PolicyRepository using GORM
type GormPolicyRepository struct {
	db *gorm.DB
}

// NewGormPolicyRepository creates a new GormPolicyRepository
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{db: db}
}

// FindByIDForTenant finds a policy within a tenant
func (r *GormPolicyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Policy, error) {
	var p asset.Policy
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &p, nil
}

// FindAllForTenant lists a tenant's policies
func (r *GormPolicyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.Policy, error) {
	var policies []asset.Policy
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&asset.Policy{}).Scopes(tenantScope(tenantID)), filter).
		Scopes(paginate(filter, PolicySortFields, "created_at")).
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// CountForTenant counts a tenant's policies matching filter
func (r *GormPolicyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&asset.Policy{}).Scopes(tenantScope(tenantID)), filter).
		Count(&count).Error
	return count, err
}

// Save creates or updates a policy
func (r *GormPolicyRepository) Save(ctx context.Context, p *asset.Policy) error {
	return translateError(r.db.WithContext(ctx).Save(p).Error, ErrDuplicatePolicyNumber)
}

func (r *GormPolicyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(policy_number) LIKE ? OR LOWER(carrier) LIKE ?", pattern, pattern)
	}
	if carrier, ok := stringFilter(filter, "carrier"); ok {
		query = query.Where("carrier = ?", carrier)
	}
	return query
}

// GormCoverageRepository implements asset.CoverageRepository using GORM
type GormCoverageRepository struct {
	db *gorm.DB
}

// NewGormCoverageRepository creates a new GormCoverageRepository
func NewGormCoverageRepository(db *gorm.DB) *GormCoverageRepository {
	return &GormCoverageRepository{db: db}
}

// Create inserts a coverage. The unique index on the asset/policy pair is
// the only duplicate check, so two racing attaches cannot both succeed.
func (r *GormCoverageRepository) Create(ctx context.Context, c *asset.Coverage) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error, asset.ErrDuplicateCoverage)
}

// FindByAsset lists the policies covering an asset
func (r *GormCoverageRepository) FindByAsset(ctx context.Context, tenantID, assetID uuid.UUID) ([]asset.Coverage, error) {
	var out []asset.Coverage
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND asset_id = ?", tenantID, assetID).
		Order("covered_from ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByPolicy lists the assets on a policy
func (r *GormCoverageRepository) FindByPolicy(ctx context.Context, tenantID, policyID uuid.UUID) ([]asset.Coverage, error) {
	var out []asset.Coverage
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND policy_id = ?", tenantID, policyID).
		Order("covered_from ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an asset from a policy
func (r *GormCoverageRepository) Delete(ctx context.Context, tenantID, assetID, policyID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&asset.Coverage{},
		"tenant_id = ? AND asset_id = ? AND policy_id = ?", tenantID, assetID, policyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ asset.AssetRepository    = (*GormAssetRepository)(nil)
	_ asset.PolicyRepository   = (*GormPolicyRepository)(nil)
	_ asset.CoverageRepository = (*GormCoverageRepository)(nil)
)
