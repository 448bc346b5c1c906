package asset

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssetRepository persists assets
type AssetRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Asset, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Asset, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, asset *Asset) error
}

// PolicyRepository persists insurance policies
type PolicyRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Policy, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Policy, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, policy *Policy) error
}

// CoverageRepository persists asset/policy links
type CoverageRepository interface {
	// Create inserts a coverage and returns ErrDuplicateCoverage when the
	// pair already exists
	Create(ctx context.Context, coverage *Coverage) error
	FindByAsset(ctx context.Context, tenantID, assetID uuid.UUID) ([]Coverage, error)
	FindByPolicy(ctx context.Context, tenantID, policyID uuid.UUID) ([]Coverage, error)
	Delete(ctx context.Context, tenantID, assetID, policyID uuid.UUID) error
}
